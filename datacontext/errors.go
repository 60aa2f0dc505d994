package datacontext

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned by typed getters when the key is not bound.
	ErrItemNotFound = errors.New("context item not found")
	// ErrUnknownKind is returned when decoding an item with an unregistered type.
	ErrUnknownKind = errors.New("unknown context item kind")
)

// KindError reports a typed lookup that found an item of another kind.
type KindError struct {
	Key  string
	Want Kind
	Got  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("context item %q is %s, not %s", e.Key, e.Got, e.Want)
}
