package combinator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/lazykit/combinator"
)

func square() (combinator.Callable[int, int], *int) {
	calls := 0
	return combinator.Func("square", func(_ context.Context, n int) (int, error) {
		calls++
		return n * n, nil
	}), &calls
}

// flaky fails until it has been called okAfter times.
func flaky(okAfter int, err error) (combinator.Callable[string, string], *int) {
	calls := 0
	return combinator.Func("flaky", func(_ context.Context, in string) (string, error) {
		calls++
		if calls < okAfter {
			return "", err
		}
		return "ok:" + in, nil
	}), &calls
}

type orderTracker[I, O any] struct {
	inner combinator.Callable[I, O]
	tag   string
	order *[]string
}

func (o *orderTracker[I, O]) Name() string { return o.inner.Name() }
func (o *orderTracker[I, O]) Call(ctx context.Context, in I) (O, error) {
	*o.order = append(*o.order, o.tag+":before")
	out, err := o.inner.Call(ctx, in)
	*o.order = append(*o.order, o.tag+":after")
	return out, err
}

func track[I, O any](tag string, order *[]string) combinator.Combinator[I, O] {
	return func(inner combinator.Callable[I, O]) combinator.Callable[I, O] {
		return &orderTracker[I, O]{inner: inner, tag: tag, order: order}
	}
}

func TestChain_Empty(t *testing.T) {
	f, _ := square()
	wrapped := combinator.Chain[int, int]()(f)
	if wrapped.Name() != "square" {
		t.Fatalf("expected 'square', got %q", wrapped.Name())
	}
	out, err := wrapped.Call(context.Background(), 3)
	if err != nil || out != 9 {
		t.Fatalf("expected 9, got %d, err %v", out, err)
	}
}

func TestChain_Order(t *testing.T) {
	var order []string
	f, _ := square()
	wrapped := combinator.Chain(
		track[int, int]("A", &order),
		track[int, int]("B", &order),
		track[int, int]("C", &order),
	)(f)

	if _, err := wrapped.Call(context.Background(), 2); err != nil {
		t.Fatal(err)
	}

	want := "A:before B:before C:before C:after B:after A:after"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestWrap_EquivalentToChain(t *testing.T) {
	var chained, wrapped []string
	f, _ := square()

	_, _ = combinator.Chain(track[int, int]("A", &chained), track[int, int]("B", &chained))(f).
		Call(context.Background(), 1)
	_, _ = combinator.Wrap(f, track[int, int]("A", &wrapped), track[int, int]("B", &wrapped)).
		Call(context.Background(), 1)

	if strings.Join(chained, ",") != strings.Join(wrapped, ",") {
		t.Errorf("Chain order %v differs from Wrap order %v", chained, wrapped)
	}
}

func TestWrap_DeepensStack(t *testing.T) {
	var order []string
	f, _ := square()
	inner := combinator.Wrap(f, track[int, int]("inner", &order))
	outer := combinator.Wrap(inner, track[int, int]("outer", &order))

	if _, err := outer.Call(context.Background(), 2); err != nil {
		t.Fatal(err)
	}
	want := "outer:before inner:before inner:after outer:after"
	if got := strings.Join(order, " "); got != want {
		t.Errorf("order = %q, want %q", got, want)
	}
}

func TestStack_ValidatorShortCircuits(t *testing.T) {
	var order []string
	f, calls := square()
	rejectNegative := combinator.WithValidator[int, int](func(n int) error {
		if n < 0 {
			return errors.New("must not be negative")
		}
		return nil
	})
	wrapped := combinator.Wrap(f,
		track[int, int]("outer", &order),
		rejectNegative,
		track[int, int]("inner", &order),
	)

	if _, err := wrapped.Call(context.Background(), -1); err == nil {
		t.Fatal("expected validation failure")
	}
	if *calls != 0 {
		t.Errorf("wrapped callable ran %d times", *calls)
	}
	if got := strings.Join(order, " "); got != "outer:before outer:after" {
		t.Errorf("order = %q, inner combinators must not run", got)
	}

	order = nil
	out, err := wrapped.Call(context.Background(), 3)
	if err != nil || out != 9 {
		t.Fatalf("expected 9, got %d, err %v", out, err)
	}
	if len(order) != 4 {
		t.Errorf("expected 4 entries, got %v", order)
	}
}

func TestWithRepeat(t *testing.T) {
	tests := []struct {
		name      string
		times     int
		wantCalls int
	}{
		{"three", 3, 3},
		{"once", 1, 1},
		{"zero treated as one", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, calls := square()
			out, err := combinator.Wrap(f, combinator.WithRepeat[int, int](tt.times)).Call(context.Background(), 5)
			if err != nil || out != 25 {
				t.Fatalf("expected 25, got %d, err %v", out, err)
			}
			if *calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", *calls, tt.wantCalls)
			}
		})
	}
}

func TestWithRepeat_StopsAtFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	f := combinator.Func("fails", func(context.Context, int) (int, error) {
		calls++
		return 0, boom
	})

	_, err := combinator.Wrap(f, combinator.WithRepeat[int, int](4)).Call(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestCallCounter(t *testing.T) {
	counter := combinator.NewCallCounter[int, int]()
	f, _ := square()
	wrapped := combinator.Wrap(f, counter.Combinator())

	for i := range 4 {
		_, _ = wrapped.Call(context.Background(), i)
	}
	if counter.Count() != 4 {
		t.Errorf("Count() = %d, want 4", counter.Count())
	}
	if wrapped.Name() != "square" {
		t.Errorf("Name() = %q", wrapped.Name())
	}
}

func TestMapResult(t *testing.T) {
	greet := combinator.Func("greet", func(_ context.Context, name string) (string, error) {
		if name == "" {
			return "", errors.New("no name")
		}
		return "hello " + name, nil
	})
	wrapped := combinator.Wrap(greet,
		combinator.MapResult[string, string](func(s string) string { return ">> " + s }),
		combinator.MapResult[string](strings.ToUpper),
	)

	out, err := wrapped.Call(context.Background(), "ada")
	if err != nil {
		t.Fatal(err)
	}
	if out != ">> HELLO ADA" {
		t.Errorf("got %q", out)
	}

	if _, err := wrapped.Call(context.Background(), ""); err == nil || err.Error() != "no name" {
		t.Errorf("expected failure to pass through, got %v", err)
	}
}

func TestArgs(t *testing.T) {
	args := combinator.NewArgs(1, "x").WithNamed("b", 2).WithNamed("a", true)
	if got := args.String(); got != `1, "x", a=true, b=2` {
		t.Errorf("String() = %q", got)
	}
	if args.Arg(1) != "x" || args.Arg(5) != nil {
		t.Errorf("Arg lookups wrong: %v %v", args.Arg(1), args.Arg(5))
	}
	if v, ok := args.Get("b"); !ok || v != 2 {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
}

func TestArgs_WithNamedCopies(t *testing.T) {
	base := combinator.NewArgs(1).WithNamed("a", 1)
	_ = base.WithNamed("b", 2)
	if _, ok := base.Get("b"); ok {
		t.Error("WithNamed must not modify the receiver")
	}
}

func TestArgs_Key(t *testing.T) {
	tests := []struct {
		name  string
		a, b  combinator.Args
		equal bool
	}{
		{"same positional", combinator.NewArgs(1, "x"), combinator.NewArgs(1, "x"), true},
		{"different positional", combinator.NewArgs(1), combinator.NewArgs(2), false},
		{"positional order matters", combinator.NewArgs(1, 2), combinator.NewArgs(2, 1), false},
		{
			"named order ignored",
			combinator.NewArgs().WithNamed("a", 1).WithNamed("b", 2),
			combinator.NewArgs().WithNamed("b", 2).WithNamed("a", 1),
			true,
		},
		{"empty positional equals nil", combinator.NewArgs(), combinator.Args{Positional: []any{}}, true},
		{"zero value equals empty", combinator.Args{}, combinator.NewArgs(), true},
		{"empty named equals nil", combinator.Args{Named: map[string]any{}}, combinator.Args{}, true},
		{"no arguments differs from a nil argument", combinator.NewArgs(), combinator.NewArgs(nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, err := tt.a.Key()
			if err != nil {
				t.Fatal(err)
			}
			kb, err := tt.b.Key()
			if err != nil {
				t.Fatal(err)
			}
			if (ka == kb) != tt.equal {
				t.Errorf("keys %q and %q: equal = %v, want %v", ka, kb, ka == kb, tt.equal)
			}
		})
	}
}
