package confstack

import (
	"errors"
	"reflect"
	"sort"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Exported error categories returned by this package. These are used with wrapping
// so callers can detect error classes using errors.Is/As.
//   - ErrUnknownFileType: a filename without an extension, or a format identifier
//     outside the recognized set (json, toml, yaml, ini, env).
//   - ErrNoConfigFileFound: Build finished its search without finding the target
//     file in any registered directory, and silent mode was off.
//   - ErrFileNotFound: an explicitly named dotenv file does not exist, and silent
//     mode was off.
var (
	ErrUnknownFileType   = errors.New("unknown file type")
	ErrNoConfigFileFound = errors.New("no configuration file found")
	ErrFileNotFound      = errors.New("file not found")
)

// Config holds merged configuration settings in an ordered key-value store.
// Keys keep the position of their first insertion; merging a later source
// overwrites values in place without moving their keys. Values are arbitrary,
// kept exactly as the format decoders produce them: strings, numbers, nested
// mappings, or sequences.
//
// A Config is not safe for concurrent use without external synchronization.
type Config struct {
	values *orderedmap.OrderedMap[string, any]
}

// New returns a Config seeded from defaults. Keys are copied in; values are
// shared by reference, not deep-copied. A nil defaults map yields an empty
// Config.
func New(defaults map[string]any) *Config {
	c := &Config{values: orderedmap.New[string, any]()}
	c.Merge(defaults)
	return c
}

// Set inserts key or overwrites its value. An existing key keeps its position.
func (c *Config) Set(key string, value any) {
	c.values.Set(key, value)
}

// Get returns the value stored at key, or nil when the key is absent. It
// never fails.
func (c *Config) Get(key string) any {
	return c.GetDefault(key, nil)
}

// GetDefault returns the value stored at key, or fallback when the key is
// absent. It never fails.
func (c *Config) GetDefault(key string, fallback any) any {
	if v, ok := c.values.Get(key); ok {
		return v
	}
	return fallback
}

// Has reports whether key is present.
func (c *Config) Has(key string) bool {
	_, ok := c.values.Get(key)
	return ok
}

// Len returns the number of keys in the store.
func (c *Config) Len() int {
	return c.values.Len()
}

// Keys returns all keys in insertion order.
func (c *Config) Keys() []string {
	keys := make([]string, 0, c.values.Len())
	for pair := c.values.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// AsMap returns a shallow copy of the store as a plain map. Nested values are
// shared with the Config, not copied.
func (c *Config) AsMap() map[string]any {
	m := make(map[string]any, c.values.Len())
	for pair := c.values.Oldest(); pair != nil; pair = pair.Next() {
		m[pair.Key] = pair.Value
	}
	return m
}

// Merge overlays m onto the store: every key in m is set, replacing existing
// values and appending new keys, while keys absent from m stay untouched.
// The batch is applied in sorted key order, so the store's key order is
// deterministic for a given sequence of merges; a key that already exists
// keeps its original position.
func (c *Config) Merge(m map[string]any) {
	mergeSorted(c, m)
}

// mergeSorted applies one unordered batch to the store in sorted key order.
func mergeSorted[V any](c *Config, m map[string]V) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c.values.Set(k, m[k])
	}
}

// GetNested walks segments through nested mappings and sequences, starting at
// the store itself, and returns the node the full path leads to. Any step that
// cannot descend returns fallback instead:
//   - the current node is neither a mapping nor a sequence (a string leaf
//     stops the walk here, before its segment is even inspected),
//   - the node is a mapping and the segment is not a present key,
//   - the node is a sequence and the segment does not parse as an integer,
//     or parses to an index outside [0, len).
//
// GetNested never fails. With zero segments it returns the Config itself.
func (c *Config) GetNested(segments []string, fallback any) any {
	var node any = c
	for _, seg := range segments {
		switch n := node.(type) {
		case *Config:
			if n == nil {
				return fallback
			}
			v, ok := n.values.Get(seg)
			if !ok {
				return fallback
			}
			node = v
		case map[string]any:
			v, ok := n[seg]
			if !ok {
				return fallback
			}
			node = v
		default:
			v, ok := descend(n, seg)
			if !ok {
				return fallback
			}
			node = v
		}
	}
	return node
}

// descend resolves one path segment against the mapping and sequence shapes
// the typed cases in GetNested do not cover: maps with decoder-specific key
// types and typed slices or arrays.
func descend(node any, seg string) (any, bool) {
	rv := reflect.ValueOf(node)
	switch rv.Kind() {
	case reflect.Map:
		var key reflect.Value
		switch kt := rv.Type().Key(); kt.Kind() {
		case reflect.String:
			key = reflect.ValueOf(seg).Convert(kt)
		case reflect.Interface:
			if kt.NumMethod() != 0 {
				return nil, false
			}
			key = reflect.ValueOf(seg)
		default:
			return nil, false
		}
		v := rv.MapIndex(key)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	default:
		return nil, false
	}
}
