package config

import (
	"fmt"
	"io"
)

// Layer is one configuration source's key -> raw value mapping, in the order
// keys were first defined. Layers are write-once inputs to Merge; nothing
// mutates them after loading.
type Layer struct {
	// Source names where the layer came from, for diagnostics and the
	// config show command ("defaults", a file path, a section pattern).
	Source string

	keys   []string
	values map[string]string
}

// NewLayer returns an empty layer labeled with source.
func NewLayer(source string) *Layer {
	return &Layer{
		Source: source,
		values: make(map[string]string),
	}
}

// Set records a raw value, preserving first-definition key order. A repeated
// key within one source keeps its position and takes the latest value, the
// way re-assignment works in a config file.
func (l *Layer) Set(key, value string) {
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = value
}

// Get returns the raw value for key and whether it is defined.
func (l *Layer) Get(key string) (string, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Keys returns the defined keys in definition order.
func (l *Layer) Keys() []string {
	keys := make([]string, len(l.keys))
	copy(keys, l.keys)
	return keys
}

// Len returns the number of defined keys.
func (l *Layer) Len() int { return len(l.keys) }

// Encode writes the layer back out as "key = value" lines in key order.
// Encoding then re-parsing yields an equal layer.
func (l *Layer) Encode(w io.Writer) error {
	for _, key := range l.keys {
		if _, err := fmt.Fprintf(w, "%s = %s\n", key, l.values[key]); err != nil {
			return err
		}
	}
	return nil
}

// Merge folds layers into one, most authoritative first: the first layer
// that defines a key supplies its value, later layers only fill gaps. The
// result's Source joins the inputs' sources for diagnostics.
func Merge(layers ...*Layer) *Layer {
	merged := NewLayer("merged")
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		for _, key := range layer.keys {
			if _, ok := merged.values[key]; ok {
				continue
			}
			merged.Set(key, layer.values[key])
		}
	}
	return merged
}

// SourceOf reports which of layers (most authoritative first) supplies key,
// mirroring the Merge fold. Used by config show to label value provenance.
func SourceOf(key string, layers ...*Layer) (string, bool) {
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		if _, ok := layer.Get(key); ok {
			return layer.Source, true
		}
	}
	return "", false
}
