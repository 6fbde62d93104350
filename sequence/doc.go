// Package sequence defines the lazy-sequence contract used across lazykit
// and the two ways of implementing it.
//
// An Iterator yields values one at a time through Next and reports the end
// of the sequence as (zero, false, nil). Once exhausted, it stays exhausted.
//
// Cursors are explicit state machines (Counter, Range, Countdown,
// FibonacciCursor, SliceCursor) whose state advances in place on each Next.
//
// Producers wrap an ordinary function body that yields values. The body is
// suspended at each yield and resumed by the next pull:
//
//	p := sequence.Fibonacci(10)
//	defer p.Close()
//	for v, err := range sequence.Seq(ctx, p) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(v)
//	}
//
// A Coroutine additionally accepts values at its suspension points via Send.
package sequence
