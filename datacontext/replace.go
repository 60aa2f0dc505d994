package datacontext

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var tokenRegEx = regexp.MustCompile(`#[^#\s]+#`)

// Tokens returns every placeholder token found in s, in order of appearance.
func Tokens(s string) []string {
	return tokenRegEx.FindAllString(s, -1)
}

// Replace substitutes every placeholder token of s bound to a scalar item.
// Unbound tokens and tokens bound to collections, charts or images are left
// verbatim. Substituted values are expanded in turn, so replacing an already
// replaced string returns it unchanged. Tokens whose values refer back to
// themselves, directly or through other tokens, are left verbatim.
func (c *Context) Replace(s string, f *Formatter) string {
	if c.Len() == 0 || len(Tokens(s)) == 0 {
		return s
	}

	if f == nil {
		f = DefaultFormatter()
	}

	r := &replacer{
		ctx:    c,
		f:      f,
		done:   map[string]string{},
		cyclic: map[string]bool{},
	}

	return r.replace(s)
}

type replacer struct {
	ctx *Context
	f   *Formatter

	// tokens being expanded, outermost first
	stack  []string
	done   map[string]string
	cyclic map[string]bool
}

func (r *replacer) replace(s string) string {
	return tokenRegEx.ReplaceAllStringFunc(s, r.expand)
}

func (r *replacer) expand(token string) string {
	if value, ok := r.done[token]; ok {
		return value
	}

	if i := slices.Index(r.stack, token); i >= 0 {
		for _, t := range r.stack[i:] {
			r.cyclic[t] = true
		}
		return token
	}

	item, ok := r.ctx.items[token]
	if !ok {
		return token
	}

	value, ok := Render(item, r.f)
	if !ok {
		return token
	}

	r.stack = append(r.stack, token)
	value = r.replace(value)
	r.stack = r.stack[:len(r.stack)-1]

	if r.cyclic[token] {
		value = token
	}
	r.done[token] = value

	return value
}

// Render returns the textual form of a scalar item. The boolean result is
// false for kinds that have no textual form.
func Render(item Item, f *Formatter) (string, bool) {
	switch v := item.(type) {
	case *StringModel:
		return v.Value, true
	case *BooleanModel:
		return strconv.FormatBool(v.Value), true
	case *DoubleModel:
		return f.FormatNumber(v.Value, v.RenderPattern), true
	case *DateModel:
		return f.FormatDate(v.Value, v.RenderPattern), true
	case *StringListModel:
		return strings.Join(v.Values, ", "), true
	}

	return "", false
}
