package data

import (
	"fmt"
	"strings"
)

// Key is one animation key: a tuple of dimension values.
type Key []any

// KeyOf builds a key from scalar values.
func KeyOf(vals ...any) Key { return Key(vals) }

// String returns a canonical form used for map indexing and display.
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		switch x := v.(type) {
		case float64:
			parts[i] = fmt.Sprintf("%g", x)
		default:
			parts[i] = fmt.Sprintf("%v", v)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Equal compares two keys by canonical form.
func (k Key) Equal(o Key) bool {
	return len(k) == len(o) && k.String() == o.String()
}

func valueEqual(a, b any) bool {
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}
