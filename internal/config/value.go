// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strconv"
	"strings"
)

// Kind describes the shape of a configuration value.
type Kind int

const (
	// KindString is a single free-form string value.
	KindString Kind = iota
	// KindBool is an on/off switch.
	KindBool
	// KindList is an ordered list of strings (repeatable flags, positional
	// arguments, comma-separated file or environment values).
	KindList
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	default:
		return "string"
	}
}

// Value is a single configuration value as exposed by a [Layer].
//
// The zero Value is an absent string.
type Value struct {
	kind  Kind
	text  string
	flag  bool
	items []string
}

// StringValue returns a string-kinded Value.
func StringValue(s string) Value {
	return Value{kind: KindString, text: s}
}

// BoolValue returns a bool-kinded Value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, flag: b}
}

// ListValue returns a list-kinded Value holding a copy of items. Blank items
// are dropped, so a list of blanks is absent.
func ListValue(items []string) Value {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	return Value{kind: KindList, items: kept}
}

// Kind reports the kind the value was created with.
func (v Value) Kind() Kind {
	return v.kind
}

// Absent reports whether the value must be treated as "not set" for
// precedence purposes: an empty string or an empty list. Booleans are always
// present, an explicit false is a real value.
func (v Value) Absent() bool {
	switch v.kind {
	case KindBool:
		return false
	case KindList:
		return len(v.items) == 0
	default:
		return v.text == ""
	}
}

// String renders the value as text. Lists are joined with ", ".
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.flag)
	case KindList:
		return strings.Join(v.items, ", ")
	default:
		return v.text
	}
}

// Bool interprets the value as a boolean. String values accept the usual INI
// spellings (1/0, true/false, yes/no, on/off). The second result is false
// when the value cannot be interpreted.
func (v Value) Bool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.flag, true
	case KindList:
		return false, false
	}

	switch strings.ToLower(strings.TrimSpace(v.text)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, true
	case "0", "f", "false", "no", "n", "off":
		return false, true
	}
	return false, false
}

// Int interprets the value as a base-10 integer.
func (v Value) Int() (int, bool) {
	if v.kind != KindString {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.text))
	if err != nil {
		return 0, false
	}
	return n, true
}

// Items interprets the value as a list. String values are split on commas
// and trimmed; empty elements are dropped.
func (v Value) Items() []string {
	switch v.kind {
	case KindList:
		return append([]string(nil), v.items...)
	case KindBool:
		return []string{v.String()}
	}

	parts := strings.Split(v.text, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || v.text != other.text || v.flag != other.flag {
		return false
	}
	if len(v.items) != len(other.items) {
		return false
	}
	for i := range v.items {
		if v.items[i] != other.items[i] {
			return false
		}
	}
	return true
}
