package combinator

import "context"

// Callable is a named operation that can be wrapped by combinators.
type Callable[I, O any] interface {
	// Name identifies the callable. Wrappers report the name of what they wrap.
	Name() string
	// Call invokes the operation.
	Call(ctx context.Context, in I) (O, error)
}

// Combinator transforms a Callable by wrapping it. The returned callable
// delegates to the original while adding behavior before and/or after it.
type Combinator[I, O any] func(Callable[I, O]) Callable[I, O]

// Chain composes multiple combinators into one. The first combinator is
// outermost: its pre-call logic runs first and its post-call logic last.
//
// Chain(a, b, c)(f) is equivalent to a(b(c(f))).
func Chain[I, O any](combinators ...Combinator[I, O]) Combinator[I, O] {
	return func(inner Callable[I, O]) Callable[I, O] {
		for i := len(combinators) - 1; i >= 0; i-- {
			inner = combinators[i](inner)
		}
		return inner
	}
}

// Wrap applies combinators to base, first combinator outermost. Wrapping an
// already wrapped callable deepens the stack.
func Wrap[I, O any](base Callable[I, O], combinators ...Combinator[I, O]) Callable[I, O] {
	return Chain(combinators...)(base)
}

// Func adapts a plain function into a named Callable.
func Func[I, O any](name string, fn func(context.Context, I) (O, error)) Callable[I, O] {
	return &funcCallable[I, O]{name: name, fn: fn}
}

type funcCallable[I, O any] struct {
	name string
	fn   func(context.Context, I) (O, error)
}

func (f *funcCallable[I, O]) Name() string { return f.name }

func (f *funcCallable[I, O]) Call(ctx context.Context, in I) (O, error) {
	return f.fn(ctx, in)
}
