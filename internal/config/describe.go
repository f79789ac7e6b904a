// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// Entry is one key of a section, ready for display.
type Entry struct {
	Section string
	Key     string
	// Value is masked for secret keys, see [IsSecret].
	Value  string
	Origin Origin
	// Set is false when no layer defines the key.
	Set      bool
	Required bool
}

// Missing reports a required key no layer defines.
func (e Entry) Missing() bool {
	return e.Required && !e.Set
}

// Entries lists every key of every resolved section in declaration order.
// It fails with [ErrNotResolved] until [Root.ResolveAll] succeeded.
func (r *Root) Entries() ([]Entry, error) {
	var entries []Entry
	for _, s := range r.sections {
		res, err := r.Resolved(s.name)
		if err != nil {
			return nil, err
		}
		entries = append(entries, sectionEntries(s, res)...)
	}
	return entries, nil
}

// Inspect lists every key of every section like [Root.Entries] but without
// validating required keys, so a configuration can be shown before it is
// complete. Nothing is committed.
func (r *Root) Inspect() ([]Entry, error) {
	if !r.loaded {
		return nil, fmt.Errorf("%w: call Parse or Load first", ErrNotParsed)
	}

	var entries []Entry
	for _, s := range r.sections {
		res := newResolved(s.name, s.keys, s.Chain(r.commandLine(s), r.files))
		entries = append(entries, sectionEntries(s, res)...)
	}
	return entries, nil
}

func sectionEntries(s *Section, res *Resolved) []Entry {
	required := make(map[string]bool)
	for _, k := range s.Required() {
		required[k] = true
	}

	keys := res.Keys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		e := Entry{Section: s.name, Key: key, Required: required[key]}
		if v, ok := res.Lookup(key); ok {
			e.Set = true
			e.Value = v.String()
			e.Origin, _ = res.Origin(key)
			if IsSecret(key) {
				e.Value = MaskValue(e.Value)
			}
		}
		entries = append(entries, e)
	}
	return entries
}

// IsSecret reports whether key holds a credential.
func IsSecret(key string) bool {
	key = NormalizeKey(key)
	return strings.HasSuffix(key, "_secret") ||
		strings.HasSuffix(key, "_token") ||
		strings.HasSuffix(key, "_key") ||
		key == "password"
}

// MaskValue hides all but the last four characters of long values.
func MaskValue(v string) string {
	runes := []rune(v)
	if len(runes) <= 8 {
		return strings.Repeat("*", len(runes))
	}
	return strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-4:])
}
