package combinator_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/kbukum/lazykit/combinator"
	"github.com/kbukum/lazykit/logger"
)

func debugLogger(t *testing.T) (*logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, &buf, "test"), &buf
}

func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid json line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func messages(lines []map[string]any) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i], _ = l["message"].(string)
	}
	return out
}

func TestWithLogging_WrapsTimer(t *testing.T) {
	log, buf := debugLogger(t)
	f, _ := square()
	wrapped := combinator.Wrap(f,
		combinator.WithLogging[int, int](log),
		combinator.LogTiming[int, int](log),
	)

	out, err := wrapped.Call(context.Background(), 7)
	if err != nil || out != 49 {
		t.Fatalf("expected 49, got %d, err %v", out, err)
	}

	lines := logLines(t, buf)
	want := "call,timer started,timer finished,return"
	if got := strings.Join(messages(lines), ","); got != want {
		t.Fatalf("log order = %q, want %q", got, want)
	}

	callID := lines[0][logger.FieldCallID]
	if callID == nil || callID == "" {
		t.Fatal("expected a call id on the call entry")
	}
	for _, l := range lines {
		if l[logger.FieldCallID] != callID {
			t.Errorf("entry %q has call id %v, want %v", l["message"], l[logger.FieldCallID], callID)
		}
	}
	if lines[0][logger.FieldArgs] != "7" {
		t.Errorf("args = %v", lines[0][logger.FieldArgs])
	}
	if lines[0][logger.FieldCallable] != "square" {
		t.Errorf("callable = %v", lines[0][logger.FieldCallable])
	}
	if lines[2][logger.FieldOperation] != "square" {
		t.Errorf("timer operation = %v", lines[2][logger.FieldOperation])
	}
	if _, ok := lines[2][logger.FieldDuration]; !ok {
		t.Error("timer entry missing duration")
	}
	if lines[3][logger.FieldResult] != "49" {
		t.Errorf("result = %v", lines[3][logger.FieldResult])
	}
}

func TestWithLogging_Failure(t *testing.T) {
	log, buf := debugLogger(t)
	boom := errors.New("boom")
	f := combinator.Func("explode", func(context.Context, int) (int, error) {
		return 0, boom
	})

	_, err := combinator.Wrap(f, combinator.WithLogging[int, int](log)).Call(context.Background(), 1)
	if err != boom {
		t.Fatalf("expected the failure unchanged, got %v", err)
	}

	lines := logLines(t, buf)
	if got := strings.Join(messages(lines), ","); got != "call,call failed" {
		t.Fatalf("log order = %q", got)
	}
	if lines[1][logger.FieldError] != "boom" || lines[1]["level"] != "error" {
		t.Errorf("unexpected failure entry: %v", lines[1])
	}
}

func TestWithLogging_FreshCallIDs(t *testing.T) {
	log, buf := debugLogger(t)
	var seen []string
	f := combinator.Func("id", func(ctx context.Context, n int) (int, error) {
		seen = append(seen, logger.CallIDFromContext(ctx))
		return n, nil
	})
	wrapped := combinator.Wrap(f, combinator.WithLogging[int, int](log))

	_, _ = wrapped.Call(context.Background(), 1)
	_, _ = wrapped.Call(context.Background(), 2)

	if len(seen) != 2 || seen[0] == "" || seen[0] == seen[1] {
		t.Errorf("expected two distinct call ids, got %v", seen)
	}
	if len(logLines(t, buf)) != 4 {
		t.Errorf("expected 4 entries")
	}
}

func TestWithTimer_ReportsFailures(t *testing.T) {
	clock := time.Unix(0, 0)
	now := func() time.Time {
		clock = clock.Add(5 * time.Millisecond)
		return clock
	}

	var started []string
	var reported time.Duration
	var reportedErr error
	boom := errors.New("boom")
	f := combinator.Func("slow", func(context.Context, int) (int, error) {
		return 0, boom
	})
	wrapped := combinator.Wrap(f, combinator.WithTimer[int, int](combinator.TimerConfig{
		OnStart: func(_ context.Context, name string) { started = append(started, name) },
		Report: func(_ context.Context, _ string, elapsed time.Duration, err error) {
			reported, reportedErr = elapsed, err
		},
		Now: now,
	}))

	if _, err := wrapped.Call(context.Background(), 1); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
	if len(started) != 1 || started[0] != "slow" {
		t.Errorf("started = %v", started)
	}
	if reported != 5*time.Millisecond {
		t.Errorf("elapsed = %v, want 5ms", reported)
	}
	if reportedErr != boom {
		t.Errorf("reported err = %v", reportedErr)
	}
}
