package model

import (
	"strings"
)

// Kind names a query response capability.
type Kind string

const (
	KindAssetResponse   Kind = "AssetResponse"
	KindAccountResponse Kind = "AccountResponse"
)

// single is the shared core of every response that wraps exactly one entity.
// It owns nothing: entity is a shared reference handed in by the producer.
type single[E Primitive[E]] struct {
	kind   Kind
	entity E
}

func (s single[E]) String() string {
	return newPrettyString(string(s.kind)).append(s.entity.String()).finalize()
}

// sameEntity delegates response equality to the wrapped entity's own Equal.
func sameEntity[R any, E Primitive[E]](entity func(R) E, lhs, rhs R) bool {
	if isNil(rhs) {
		return false
	}
	other := entity(rhs)
	if isNil(other) {
		return false
	}
	return entity(lhs).Equal(other)
}

// prettyString renders "<Name>: [a, b, c]".
type prettyString struct {
	b     strings.Builder
	first bool
}

func newPrettyString(name string) *prettyString {
	p := &prettyString{first: true}
	p.b.WriteString(name)
	p.b.WriteString(": [")
	return p
}

func (p *prettyString) append(value string) *prettyString {
	if !p.first {
		p.b.WriteString(", ")
	}
	p.first = false
	p.b.WriteString(value)
	return p
}

func (p *prettyString) field(name, value string) *prettyString {
	return p.append(name + "=" + value)
}

func (p *prettyString) finalize() string {
	p.b.WriteString("]")
	return p.b.String()
}
