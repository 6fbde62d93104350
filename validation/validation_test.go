package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/lazykit/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"John", false},
		{"", true},
		{"   ", true},
	}
	for _, tt := range tests {
		v := New().Required("name", tt.value)
		if v.HasErrors() != tt.wantErr {
			t.Errorf("Required(%q): HasErrors = %v, want %v", tt.value, v.HasErrors(), tt.wantErr)
		}
	}
}

func TestValidatorNumber(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		want   float64
		wantOK bool
	}{
		{"int", 4, 4, true},
		{"int64", int64(-2), -2, true},
		{"uint8", uint8(7), 7, true},
		{"float32", float32(1.5), 1.5, true},
		{"float64", 2.25, 2.25, true},
		{"string", "4", 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			got, ok := v.Number("x", tt.value)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Number(%v) = (%v, %v), want (%v, %v)", tt.value, got, ok, tt.want, tt.wantOK)
			}
			if v.HasErrors() == tt.wantOK {
				t.Errorf("HasErrors = %v", v.HasErrors())
			}
		})
	}
}

func TestValidatorNonNegative(t *testing.T) {
	if New().NonNegative("x", 0).HasErrors() {
		t.Error("zero should pass")
	}
	if New().NonNegative("x", 3.5).HasErrors() {
		t.Error("positive should pass")
	}
	v := New().NonNegative("x", -1)
	if !v.HasErrors() || v.Errors()[0].Message != "must not be negative" {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
}

func TestValidatorRange(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{5, false},
		{1, false},
		{10, false},
		{0, true},
		{11, true},
	}
	for _, tt := range tests {
		if got := New().Range("n", tt.value, 1, 10).HasErrors(); got != tt.wantErr {
			t.Errorf("Range(%d) HasErrors = %v, want %v", tt.value, got, tt.wantErr)
		}
	}
}

func TestValidatorMinMax(t *testing.T) {
	if New().Min("n", 5, 10).HasErrors() == false {
		t.Error("expected Min error")
	}
	if New().Max("n", 15, 10).HasErrors() == false {
		t.Error("expected Max error")
	}
	if New().Min("n", 10, 10).Max("n", 10, 10).HasErrors() {
		t.Error("boundaries should pass")
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"json", "console"}
	if New().OneOf("format", "json", allowed).HasErrors() {
		t.Error("expected json to be allowed")
	}
	if New().OneOf("format", "", allowed).HasErrors() {
		t.Error("empty values are skipped")
	}
	v := New().OneOf("format", "xml", allowed)
	if !v.HasErrors() || !strings.Contains(v.Errors()[0].Message, "json, console") {
		t.Errorf("unexpected errors: %v", v.Errors())
	}
}

func TestValidatorCustom(t *testing.T) {
	if New().Custom(true, "f", "msg").HasErrors() {
		t.Error("true condition should pass")
	}
	v := New().Custom(false, "f", "custom error")
	if v.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	if appErr := New().Required("name", "John").Validate("greet"); appErr != nil {
		t.Error("expected nil for valid input")
	}
	if err := New().Err("greet"); err != nil {
		t.Error("expected untyped nil from Err")
	}

	appErr := New().Required("name", "").Required("email", "").Validate("greet")
	if appErr == nil {
		t.Fatal("expected error")
	}
	if appErr.Code != errors.ErrCodeInvalidArgument {
		t.Errorf("code = %s", appErr.Code)
	}
	if appErr.Details["callable"] != "greet" {
		t.Errorf("callable detail = %v", appErr.Details["callable"])
	}
	if _, ok := appErr.Details["fields"].([]FieldError); !ok {
		t.Errorf("expected field errors in details, got %T", appErr.Details["fields"])
	}
	if !strings.Contains(appErr.Message, "name") || !strings.Contains(appErr.Message, "email") {
		t.Errorf("expected both fields in message, got %q", appErr.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "John").NonNegative("age", 25).Min("age", 25, 18)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

type window struct {
	Size  int    `mapstructure:"size" validate:"gt=0"`
	Label string `json:"label" validate:"required,max=8"`
	Mode  string `validate:"omitempty,oneof=fast slow"`
}

func TestStructValidateValid(t *testing.T) {
	if err := Validate("window", window{Size: 3, Label: "w"}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input window
		want  string
	}{
		{"size", window{Size: 0, Label: "w"}, "size: must be greater than 0"},
		{"label required", window{Size: 1}, "label: is required"},
		{"label max", window{Size: 1, Label: "much too long"}, "label: must be at most 8"},
		{"mode", window{Size: 1, Label: "w", Mode: "medium"}, "mode: must be one of: fast slow"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate("window", tt.input)
			if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
				t.Fatalf("expected INVALID_ARGUMENT, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in %q", tt.want, err.Error())
			}
		})
	}
}

func TestStructValidateNotStruct(t *testing.T) {
	err := Validate("x", 42)
	if !errors.HasCode(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("expected INVALID_ARGUMENT for non-struct, got %v", err)
	}
}

func TestRequiredFunc(t *testing.T) {
	if err := Required("name", "value"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Required("name", ""); err == nil {
		t.Error("expected error for empty required field")
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Mode":        "mode",
		"MaxAttempts": "max_attempts",
		"a":           "a",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
