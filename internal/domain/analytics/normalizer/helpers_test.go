package normalizer

import (
	"testing"
	"time"
)

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// decode parses a JSON literal into the generic tree
func decode(t *testing.T, js string) any {
	t.Helper()

	raw, err := Decode([]byte(js))
	if err != nil {
		t.Fatalf("Decode(%q) error = %v", js, err)
	}
	return raw
}

// obj parses a JSON object literal
func obj(t *testing.T, js string) Object {
	t.Helper()

	o, ok := asObject(decode(t, js))
	if !ok {
		t.Fatalf("%q is not a JSON object", js)
	}
	return o
}

// ids extracts the "id" field of each raw item
func ids(items []Object) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		id, _ := idChain.resolve(item)
		out = append(out, id)
	}
	return out
}
