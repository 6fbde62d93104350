// Package validation provides argument and configuration validation for
// lazykit. Failures are reported as INVALID_ARGUMENT AppErrors.
//
// # Struct Tag Validation
//
//	type Window struct {
//	    Size int `json:"size" validate:"gt=0"`
//	}
//	err := validation.Validate("window", w)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.NonNegative("arg0", x)
//	err := v.Err("sqrt")
package validation
