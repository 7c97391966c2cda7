package domain

import "iter"

// Vars is an ordered string mapping used for cache defines and environment overrides.
// Keys keep the position of their first insertion; setting an existing key replaces its value.
// The zero value is an empty mapping ready to use.
type Vars struct {
	keys   []string
	values map[string]string
}

// NewVars builds a mapping from alternating key/value pairs.
// A trailing key without a value is ignored.
func NewVars(pairs ...string) Vars {
	var v Vars
	for i := 0; i+1 < len(pairs); i += 2 {
		v.Set(pairs[i], pairs[i+1])
	}
	return v
}

// Set stores value under key.
func (v *Vars) Set(key, value string) {
	if v.values == nil {
		v.values = make(map[string]string)
	}
	if _, ok := v.values[key]; !ok {
		v.keys = append(v.keys, key)
	}
	v.values[key] = value
}

// Get returns the value stored under key.
func (v Vars) Get(key string) (string, bool) {
	value, ok := v.values[key]
	return value, ok
}

// Len returns the number of keys.
func (v Vars) Len() int {
	return len(v.keys)
}

// All iterates over the pairs in insertion order.
func (v Vars) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range v.keys {
			if !yield(k, v.values[k]) {
				return
			}
		}
	}
}

// Merge returns a new mapping holding v's pairs overlaid with other's.
// Keys of v come first; keys only present in other follow in other's order.
// On collision the value from other wins.
func (v Vars) Merge(other Vars) Vars {
	var out Vars
	for k, val := range v.All() {
		out.Set(k, val)
	}
	for k, val := range other.All() {
		out.Set(k, val)
	}
	return out
}

// Environ renders the mapping as KEY=VALUE entries.
func (v Vars) Environ() []string {
	out := make([]string, 0, len(v.keys))
	for k, val := range v.All() {
		out = append(out, k+"="+val)
	}
	return out
}
