package combinator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-json"
)

// Args is an aggregate call-arguments value: an ordered positional list and
// a set of named parameters. It lets one callable signature carry any arity.
type Args struct {
	Positional []any          `json:"positional"`
	Named      map[string]any `json:"named,omitempty"`
}

// NewArgs creates Args from positional values.
func NewArgs(positional ...any) Args {
	return Args{Positional: positional}
}

// WithNamed returns a copy of a with the named parameter set.
func (a Args) WithNamed(key string, value any) Args {
	named := make(map[string]any, len(a.Named)+1)
	maps.Copy(named, a.Named)
	named[key] = value
	return Args{Positional: slices.Clone(a.Positional), Named: named}
}

// Arg returns the i-th positional argument, or nil if absent.
func (a Args) Arg(i int) any {
	if i < 0 || i >= len(a.Positional) {
		return nil
	}
	return a.Positional[i]
}

// Get returns a named argument.
func (a Args) Get(key string) (any, bool) {
	v, ok := a.Named[key]
	return v, ok
}

// String renders the arguments as a call signature: positional values in
// order, then named ones sorted by key. Strings are quoted.
func (a Args) String() string {
	parts := make([]string, 0, len(a.Positional)+len(a.Named))
	for _, v := range a.Positional {
		parts = append(parts, render(v))
	}
	for _, k := range slices.Sorted(maps.Keys(a.Named)) {
		parts = append(parts, k+"="+render(a.Named[k]))
	}
	return strings.Join(parts, ", ")
}

// Key returns a canonical encoding of the arguments. Arguments that are
// equal by value produce the same key regardless of named-parameter order.
func (a Args) Key() (string, error) {
	if a.Positional == nil {
		a.Positional = []any{}
	}
	if len(a.Named) == 0 {
		a.Named = nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("encoding call arguments: %w", err)
	}
	return string(b), nil
}

func render(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}
