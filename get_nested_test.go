package confstack

import (
	"testing"
)

type namedKey interface{ Name() string }

func TestGetNested(t *testing.T) {
	c := New(map[string]any{
		"a": map[string]any{
			"b": []any{10, 20},
			"s": "leaf",
		},
		"sections": map[string]string{"host": "localhost"},
		"loose":    map[any]any{"k": "v"},
		"named":    map[namedKey]int{},
		"names":    []string{"alpha", "beta"},
		"empty":    []any{},
		"none":     nil,
	})

	const fallback = "fallback"

	tests := []struct {
		name     string
		segments []string
		want     any
	}{
		{name: "map then sequence index", segments: []string{"a", "b", "0"}, want: 10},
		{name: "second sequence index", segments: []string{"a", "b", "1"}, want: 20},
		{name: "full path to a leaf", segments: []string{"a", "s"}, want: "leaf"},
		{name: "missing top-level key", segments: []string{"missing"}, want: fallback},
		{name: "missing nested key", segments: []string{"a", "missing"}, want: fallback},
		{name: "index into empty sequence", segments: []string{"empty", "0"}, want: fallback},
		{name: "index out of range", segments: []string{"a", "b", "2"}, want: fallback},
		{name: "negative index", segments: []string{"a", "b", "-1"}, want: fallback},
		{name: "non-integer segment against sequence", segments: []string{"a", "b", "x"}, want: fallback},
		{name: "descending into a string leaf", segments: []string{"a", "s", "0"}, want: fallback},
		{name: "descending into a nil value", segments: []string{"none", "k"}, want: fallback},
		{name: "string-to-string map", segments: []string{"sections", "host"}, want: "localhost"},
		{name: "interface-keyed map", segments: []string{"loose", "k"}, want: "v"},
		{name: "map keyed by a non-empty interface", segments: []string{"named", "x"}, want: fallback},
		{name: "typed string slice", segments: []string{"names", "1"}, want: "beta"},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			if got := c.GetNested(tt.segments, fallback); got != tt.want {
				t.Fatalf("GetNested(%v): got %v, want %v", tt.segments, got, tt.want)
			}
		})
	}
}

func TestGetNested_NoSegments(t *testing.T) {
	c := New(map[string]any{"a": 1})
	if got := c.GetNested(nil, "fallback"); got != any(c) {
		t.Fatalf("GetNested with no segments: got %v, want the store itself", got)
	}
}

func TestGetNested_NilFallback(t *testing.T) {
	c := New(nil)
	if got := c.GetNested([]string{"missing"}, nil); got != nil {
		t.Fatalf("GetNested: got %v, want nil", got)
	}
}

func TestGetNested_NestedStore(t *testing.T) {
	inner := New(map[string]any{"host": "localhost"})
	c := New(map[string]any{"server": inner})

	if got := c.GetNested([]string{"server", "host"}, nil); got != "localhost" {
		t.Fatalf("GetNested through a nested store: got %v, want localhost", got)
	}
	if got := c.GetNested([]string{"server", "missing"}, "fb"); got != "fb" {
		t.Fatalf("GetNested through a nested store: got %v, want fb", got)
	}
}
