// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_Absent(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  bool
	}{
		{"zero value", Value{}, true},
		{"empty string", StringValue(""), true},
		{"string", StringValue("x"), false},
		{"false bool", BoolValue(false), false},
		{"true bool", BoolValue(true), false},
		{"empty list", ListValue(nil), true},
		{"list", ListValue([]string{"a"}), false},
		{"list of blanks", ListValue([]string{"", "  "}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.value.Absent())
		})
	}
}

func TestValue_Bool(t *testing.T) {
	tests := []struct {
		in     string
		want   bool
		wantOK bool
	}{
		{"yes", true, true},
		{"On", true, true},
		{"1", true, true},
		{"no", false, true},
		{"off", false, true},
		{"false", false, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := StringValue(tt.in).Bool()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestValue_Int(t *testing.T) {
	n, ok := StringValue(" 3 ").Int()
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = StringValue("three").Int()
	assert.False(t, ok, "non-numeric values must not coerce")

	_, ok = BoolValue(true).Int()
	assert.False(t, ok)
}

func TestValue_Items(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, StringValue(" a, ,b ").Items())
	assert.Equal(t, []string{"x, y"}, ListValue([]string{"x, y"}).Items())
	assert.Equal(t, []string{"a"}, ListValue([]string{"", "a", " "}).Items())
	assert.Empty(t, StringValue("").Items())
}

func TestValue_ListIsCopied(t *testing.T) {
	items := []string{"a"}
	v := ListValue(items)
	items[0] = "changed"

	assert.Equal(t, []string{"a"}, v.Items())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "true", BoolValue(true).String())
	assert.Equal(t, "a, b", ListValue([]string{"a", "b"}).String())
	assert.Equal(t, "x", StringValue("x").String())
}

func TestValue_Equal(t *testing.T) {
	assert.True(t, ListValue([]string{"a"}).Equal(ListValue([]string{"a"})))
	assert.False(t, ListValue([]string{"a"}).Equal(ListValue([]string{"b"})))
	assert.False(t, StringValue("true").Equal(BoolValue(true)))
}
