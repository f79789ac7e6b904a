// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Resolved is the read-only outcome of resolving one section: every key the
// chain defines, with the value and origin that won.
//
// A Resolved never changes after it is built and holds no reference to the
// layers it was computed from.
type Resolved struct {
	section string
	keys    []string
	values  map[string]Value
	origins map[string]Origin
}

func newResolved(section string, specs []*keySpec, chain *Chain) *Resolved {
	r := &Resolved{
		section: section,
		values:  make(map[string]Value),
		origins: make(map[string]Origin),
	}

	registered := make(map[string]struct{}, len(specs))
	for _, k := range specs {
		registered[k.name] = struct{}{}
		r.keys = append(r.keys, k.name)
	}

	// Unregistered keys (only files can define them) follow in sorted order.
	for _, k := range chain.Keys() {
		if _, ok := registered[k]; !ok {
			r.keys = append(r.keys, k)
		}
	}

	for _, k := range r.keys {
		if v, origin, ok := chain.Lookup(k); ok {
			r.values[k] = v
			r.origins[k] = origin
		}
	}
	return r
}

// Section returns the name of the section the view belongs to.
func (r *Resolved) Section() string {
	return r.section
}

// Keys returns the registered keys in registration order followed by any
// extra keys found in config files, sorted. Keys without a value are
// included.
func (r *Resolved) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Lookup returns the resolved value of key.
func (r *Resolved) Lookup(key string) (Value, bool) {
	v, ok := r.values[NormalizeKey(key)]
	return v, ok
}

// Has reports whether key resolved to a value.
func (r *Resolved) Has(key string) bool {
	_, ok := r.Lookup(key)
	return ok
}

// Origin reports which layer supplied the value of key.
func (r *Resolved) Origin(key string) (Origin, bool) {
	o, ok := r.origins[NormalizeKey(key)]
	return o, ok
}

// String returns the textual value of key, or "" when it is unset.
func (r *Resolved) String(key string) string {
	v, _ := r.Lookup(key)
	return v.String()
}

// Bool returns the boolean value of key; unset or uninterpretable values are
// false.
func (r *Resolved) Bool(key string) bool {
	v, ok := r.Lookup(key)
	if !ok {
		return false
	}
	b, _ := v.Bool()
	return b
}

// Int returns the integer value of key. The second result is false when the
// key is unset or not a number.
func (r *Resolved) Int(key string) (int, bool) {
	v, ok := r.Lookup(key)
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Strings returns the list value of key, or nil when it is unset.
func (r *Resolved) Strings(key string) []string {
	v, ok := r.Lookup(key)
	if !ok {
		return nil
	}
	return v.Items()
}

// Map returns a copy of the resolved values in textual form.
func (r *Resolved) Map() map[string]string {
	m := make(map[string]string, len(r.values))
	for k, v := range r.values {
		m[k] = v.String()
	}
	return m
}

// Equal reports whether two views hold the same keys, values and origins.
func (r *Resolved) Equal(other *Resolved) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.section != other.section || len(r.values) != len(other.values) {
		return false
	}
	for k, v := range r.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) || r.origins[k] != other.origins[k] {
			return false
		}
	}
	return true
}
