// Package datacontext holds the values a report template binds to: a scope of
// typed items keyed by their placeholder token (e.g. "#Title#").
package datacontext

import (
	"fmt"
	"maps"
	"slices"
)

// Context is a single binding scope. Keys are matched exactly and are
// case-sensitive. A Context is not safe for concurrent writes.
type Context struct {
	items map[string]Item
}

func New() *Context {
	return &Context{items: make(map[string]Item)}
}

// Add binds item to key, replacing any previous binding.
func (c *Context) Add(key string, item Item) *Context {
	if c.items == nil {
		c.items = make(map[string]Item)
	}

	c.items[key] = item

	return c
}

func (c *Context) Item(key string) (Item, bool) {
	if c == nil {
		return nil, false
	}

	item, ok := c.items[key]

	return item, ok
}

func (c *Context) Exists(key string) bool {
	_, ok := c.Item(key)
	return ok
}

func (c *Context) Len() int {
	if c == nil {
		return 0
	}

	return len(c.items)
}

// Keys returns the bound keys in lexical order.
func (c *Context) Keys() []string {
	if c == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(c.items))
}

// Clone returns a new scope with the same bindings. Items are shared; adding
// or replacing a key on the clone never affects c.
func (c *Context) Clone() *Context {
	if c == nil {
		return New()
	}

	return &Context{items: maps.Clone(c.items)}
}

// Get returns the item bound to key as T. It fails with [ErrItemNotFound] when
// the key is unbound and with a [*KindError] when the item has another type.
func Get[T Item](c *Context, key string) (T, error) {
	var zero T

	item, ok := c.Item(key)
	if !ok {
		return zero, fmt.Errorf("%w: %q", ErrItemNotFound, key)
	}

	typed, ok := item.(T)
	if !ok {
		return zero, &KindError{Key: key, Want: zero.Kind(), Got: item.Kind()}
	}

	return typed, nil
}
