package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Object is a JSON mapping from the decoded payload tree.
// The tree holds only map[string]any, []any, string, float64 or json.Number, bool and nil.
type Object map[string]any

// Lookup returns the value at a dotted path. Absent keys and JSON nulls report false.
func (o Object) Lookup(path string) (any, bool) {
	if o == nil {
		return nil, false
	}
	var cur any = o
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(cur)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// Has reports whether any of the keys holds a non-null value
func (o Object) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := o.Lookup(key); ok {
			return true
		}
	}
	return false
}

func asObject(v any) (Object, bool) {
	switch t := v.(type) {
	case Object:
		return t, t != nil
	case map[string]any:
		return Object(t), t != nil
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// objects keeps the mapping elements of a list, dropping scalars and nulls
func objects(v any) []Object {
	list, _ := asList(v)
	out := make([]Object, 0, len(list))
	for _, item := range list {
		if obj, ok := asObject(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

// rule is one source field read for a target field, with the coercion applied to it.
// A coercion returning false means the field does not count as present.
type rule[T any] struct {
	key    string
	coerce func(any) (T, bool)
}

// chain is an ordered list of rules. The first rule whose field is present
// and coerces successfully wins.
type chain[T any] []rule[T]

func fields[T any](coerce func(any) (T, bool), names ...string) chain[T] {
	c := make(chain[T], len(names))
	for i, name := range names {
		c[i] = rule[T]{key: name, coerce: coerce}
	}
	return c
}

// then appends the rules of next after c
func (c chain[T]) then(next chain[T]) chain[T] {
	out := make(chain[T], 0, len(c)+len(next))
	out = append(out, c...)
	return append(out, next...)
}

// resolve tries every rule against each source in turn, sources in priority order
func (c chain[T]) resolve(sources ...Object) (T, bool) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for _, r := range c {
			v, ok := src.Lookup(r.key)
			if !ok {
				continue
			}
			if out, ok := r.coerce(v); ok {
				return out, true
			}
		}
	}
	var zero T
	return zero, false
}

// or resolves c and falls back to def
func (c chain[T]) or(def T, sources ...Object) T {
	if v, ok := c.resolve(sources...); ok {
		return v
	}
	return def
}

// asCount coerces any scalar to a non-negative integer. Unparseable scalars
// still count as present and yield 0. Objects are unwrapped through "count".
func asCount(v any) (int64, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	if math.IsInf(f, 0) {
		return 0, true
	}
	return clampCount(f), true
}

// clampCount truncates f to a count in [0, math.MaxInt64]. NaN yields 0.
func clampCount(f float64) int64 {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold
	case f >= math.MaxInt64:
		return math.MaxInt64
	}
	return int64(f)
}

func asFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN(), true
		}
		return f, true
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	}
	if obj, ok := asObject(v); ok {
		if inner, ok := obj.Lookup("count"); ok {
			return asFloat(inner)
		}
	}
	return 0, false
}

// asText accepts non-empty strings and numbers rendered as text
func asText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, strings.TrimSpace(t) != ""
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	}
	return "", false
}

// asCaption accepts text or a caption object carrying "text"
func asCaption(v any) (string, bool) {
	if obj, ok := asObject(v); ok {
		inner, ok := obj.Lookup("text")
		if !ok {
			return "", false
		}
		return asText(inner)
	}
	return asText(v)
}

// asURL accepts a non-empty string, or an object holding one under "url" or "src"
func asURL(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	}
	obj, ok := asObject(v)
	if !ok {
		return "", false
	}
	for _, key := range []string{"url", "src"} {
		if inner, ok := obj.Lookup(key); ok {
			if s, ok := inner.(string); ok && strings.TrimSpace(s) != "" {
				return strings.TrimSpace(s), true
			}
		}
	}
	return "", false
}

// asFlag coerces scalars to a boolean. Containers are skipped.
func asFlag(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		switch s {
		case "", "false", "0", "no":
			return false, true
		}
		return true, true
	}
	if _, isObj := asObject(v); isObj {
		return false, false
	}
	if f, ok := asFloat(v); ok {
		return f != 0 && !math.IsNaN(f), true
	}
	return false, false
}

// asTrue reports present only for truthy values, so a false flag lets later rules run
func asTrue(v any) (bool, bool) {
	b, ok := asFlag(v)
	return b, ok && b
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
