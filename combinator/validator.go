package combinator

import (
	"context"
	"fmt"
	"maps"

	apperrors "github.com/kbukum/lazykit/errors"
	"github.com/kbukum/lazykit/validation"
)

// WithValidator checks each input with pred before delegating. A rejected
// call fails with INVALID_ARGUMENT and the wrapped callable never runs.
func WithValidator[I, O any](pred func(I) error) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		return &validatorCallable[I, O]{inner: inner, pred: pred}
	}
}

type validatorCallable[I, O any] struct {
	inner Callable[I, O]
	pred  func(I) error
}

func (v *validatorCallable[I, O]) Name() string { return v.inner.Name() }

func (v *validatorCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	if err := v.pred(in); err != nil {
		var zero O
		return zero, invalidArgument(v.inner.Name(), err)
	}
	return v.inner.Call(ctx, in)
}

// invalidArgument normalizes a predicate failure into an INVALID_ARGUMENT
// AppError that names the rejecting callable.
func invalidArgument(callable string, err error) *apperrors.AppError {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidArgument {
		return apperrors.InvalidArgument(callable, err.Error()).WithCause(err)
	}
	named := *appErr
	named.Details = maps.Clone(appErr.Details)
	if named.Details == nil {
		named.Details = make(map[string]any)
	}
	named.Details["callable"] = callable
	return &named
}

// ValidateStruct rejects inputs that fail their `validate` struct tags.
func ValidateStruct[I, O any]() Combinator[I, O] {
	return WithValidator[I, O](func(in I) error {
		return validation.Validate("", in)
	})
}

// RequirePositive rejects calls with a negative numeric positional
// argument. Non-numeric arguments are not checked.
func RequirePositive[O any]() Combinator[Args, O] {
	return WithValidator[Args, O](func(args Args) error {
		v := validation.New()
		for i, arg := range args.Positional {
			if n, ok := asNumber(arg); ok {
				v.NonNegative(fmt.Sprintf("arg%d", i), n)
			}
		}
		return v.Err("")
	})
}

func asNumber(v any) (float64, bool) {
	return validation.New().Number("", v)
}
