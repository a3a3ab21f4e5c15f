// Gridlens - Energy System Model Results Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridlens

package frame

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Label is a single axis value: an integer or a string.
type Label struct {
	s   string
	n   int
	num bool
}

// Int returns an integer label.
func Int(n int) Label {
	return Label{n: n, num: true}
}

// Str returns a string label.
func Str(s string) Label {
	return Label{s: s}
}

// ParseLabel returns an integer label when s is a base-10 integer and a
// string label otherwise.
func ParseLabel(s string) Label {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return Int(n)
	}
	return Str(s)
}

// IsInt reports whether the label holds an integer.
func (l Label) IsInt() bool { return l.num }

// AsInt returns the integer value of the label. String labels holding a
// base-10 integer are converted, ok is false otherwise.
func (l Label) AsInt() (int, bool) {
	if l.num {
		return l.n, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(l.s))
	if err != nil {
		return 0, false
	}
	return n, true
}

// String renders the label the way it appears in headers.
func (l Label) String() string {
	if l.num {
		return strconv.Itoa(l.n)
	}
	return l.s
}

// Less orders integers numerically, strings lexically, integers first.
func (l Label) Less(o Label) bool {
	switch {
	case l.num && o.num:
		return l.n < o.n
	case l.num != o.num:
		return l.num
	default:
		return l.s < o.s
	}
}

// MarshalJSON encodes integer labels as JSON numbers and string labels as
// JSON strings.
func (l Label) MarshalJSON() ([]byte, error) {
	if l.num {
		return []byte(strconv.Itoa(l.n)), nil
	}
	return json.Marshal(l.s)
}

// Key is a row key with one label per index level.
type Key []Label

// K builds a key from ints and strings. Any other type panics.
func K(parts ...any) Key {
	k := make(Key, len(parts))
	for i, p := range parts {
		switch v := p.(type) {
		case int:
			k[i] = Int(v)
		case string:
			k[i] = Str(v)
		case Label:
			k[i] = v
		default:
			panic("frame: unsupported key part")
		}
	}
	return k
}

// Less compares keys level by level; shorter keys sort first on ties.
func (k Key) Less(o Key) bool {
	for i := 0; i < len(k) && i < len(o); i++ {
		if k[i] == o[i] {
			continue
		}
		return k[i].Less(o[i])
	}
	return len(k) < len(o)
}

// Equal reports whether both keys hold the same labels.
func (k Key) Equal(o Key) bool {
	if len(k) != len(o) {
		return false
	}
	for i := range k {
		if k[i] != o[i] {
			return false
		}
	}
	return true
}

// String is also the lookup identity used inside a Frame.
func (k Key) String() string {
	var b strings.Builder
	for i, l := range k {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		if l.num {
			b.WriteByte('#')
		} else {
			b.WriteByte('$')
		}
		b.WriteString(l.String())
	}
	return b.String()
}

func (k Key) clone() Key {
	out := make(Key, len(k))
	copy(out, k)
	return out
}
