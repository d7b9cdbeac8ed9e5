package types

import "strings"

// Ref is the foreign-key value type used for all cross-document references.
// Historic records stored either a bare document id ("b2f1...") or a full
// document path ("locations/b2f1..."); NewRef normalizes both forms at the
// store boundary so nothing downstream ever branches on representation.
type Ref string

func NewRef(raw string) Ref {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndexByte(raw, '/'); i >= 0 {
		raw = raw[i+1:]
	}
	return Ref(raw)
}

func (r Ref) String() string { return string(r) }

func (r Ref) IsZero() bool { return r == "" }

// NewRefPtr returns nil for empty input so optional references stay NULL.
func NewRefPtr(raw *string) *Ref {
	if raw == nil {
		return nil
	}
	ref := NewRef(*raw)
	if ref.IsZero() {
		return nil
	}
	return &ref
}
