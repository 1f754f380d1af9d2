package query

import (
	"net/url"
	"slices"
	"strings"
)

// Key identifies a cached query. Keys are hierarchical: invalidating a key
// also invalidates every key it prefixes.
type Key []string

// K builds a key from its segments.
func K(parts ...string) Key {
	return Key(parts)
}

// With returns a child key. The result never aliases k.
func (k Key) With(parts ...string) Key {
	out := make(Key, 0, len(k)+len(parts))
	out = append(out, k...)
	return append(out, parts...)
}

// WithParams appends a canonical segment for params: sorted, escaped k=v pairs with
// blank values dropped, so equal filters always produce equal keys and user text
// cannot forge another filter. No segment is added when every value is blank.
func (k Key) WithParams(params map[string]string) Key {
	seg := Params(params)
	if seg == "" {
		return k.With()
	}
	return k.With(seg)
}

// Params renders the canonical form used by WithParams.
func Params(params map[string]string) string {
	v := url.Values{}
	for name, val := range params {
		if val != "" {
			v.Set(name, val)
		}
	}
	return v.Encode()
}

// HasPrefix reports whether p is a leading sub-sequence of k.
func (k Key) HasPrefix(p Key) bool {
	return len(p) <= len(k) && slices.Equal(k[:len(p)], p)
}

func (k Key) String() string {
	return strings.Join(k, "/")
}

// id is the map key. Segments are escaped so a "/" inside one cannot split it.
func (k Key) id() string {
	parts := make([]string, len(k))
	for i, seg := range k {
		parts[i] = url.PathEscape(seg)
	}
	return strings.Join(parts, "/")
}
