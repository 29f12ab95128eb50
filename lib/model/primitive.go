// Package model holds the immutable value objects returned by ledger queries.
//
// Every value is reached through a capability interface built on Primitive.
// Equality is structural and goes through the public accessors of the other
// value, so a response decoded from the wire and one built from a ledger row
// compare equal whenever their logical content matches.
package model

import (
	"fmt"
	"reflect"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// Object is the kind-erased view of a primitive.
type Object interface {
	fmt.Stringer
	// Matches reports whether other is a value of the same capability with
	// equal logical content. It returns false for any other kind.
	Matches(other Object) bool
}

// Primitive is the value-semantics contract shared by every model type.
// T is the capability interface of the implementing kind.
type Primitive[T any] interface {
	Object
	Equal(other T) bool
}

// Match implements Object.Matches for a primitive of capability T.
func Match[T Primitive[T]](self T, other Object) bool {
	o, ok := other.(T)
	if !ok || isNil(o) {
		return false
	}
	return self.Equal(o)
}

// Equal compares two arbitrary primitives. Two nil values are equal.
func Equal(a, b Object) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	return a.Matches(b)
}

// Fingerprint returns a CIDv1 (raw + sha2-256) of the canonical rendering.
func Fingerprint(o Object) cid.Cid {
	sum, err := multihash.Sum([]byte(o.String()), multihash.SHA2_256, -1)
	if err != nil {
		// unreachable with SHA2_256 and the default length
		return cid.Undef
	}
	return cid.NewCidV1(cid.Raw, sum)
}

// SameFingerprint reports whether both primitives render to the same content.
func SameFingerprint(a, b Object) bool {
	return Fingerprint(a).Equals(Fingerprint(b))
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
