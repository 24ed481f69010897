package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EnvelopeShape records which wire shape a list response arrived in.
type EnvelopeShape int

const (
	ShapeEmpty EnvelopeShape = iota
	ShapeArray
	ShapeResults
	ShapeResource
	ShapeItems
)

func (s EnvelopeShape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeResults:
		return "results"
	case ShapeResource:
		return "resource"
	case ShapeItems:
		return "items"
	default:
		return "empty"
	}
}

// ListEnvelope is a decoded list response. Backends return either a bare
// array or an object wrapping the array under "results", the resource name,
// or "items".
type ListEnvelope[T any] struct {
	Shape EnvelopeShape
	Items []T
}

// DecodeListEnvelope resolves the envelope in priority order: bare array,
// "results", resourceKey, "items". Anything else, including null, a
// non-JSON body or an object with none of those keys, is an empty list.
// Items is never nil.
func DecodeListEnvelope[T any](raw []byte, resourceKey string) (ListEnvelope[T], error) {
	out := ListEnvelope[T]{Shape: ShapeEmpty, Items: []T{}}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return out, nil
	}

	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &out.Items); err != nil {
			return out, fmt.Errorf("decode %s list: %w", resourceKey, err)
		}
		out.Shape = ShapeArray
		return out, nil
	case '{':
	default:
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return out, fmt.Errorf("decode %s envelope: %w", resourceKey, err)
	}

	candidates := []struct {
		key   string
		shape EnvelopeShape
	}{
		{"results", ShapeResults},
		{resourceKey, ShapeResource},
		{"items", ShapeItems},
	}
	for _, c := range candidates {
		v, ok := obj[c.key]
		if !ok || c.key == "" {
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) == 0 || v[0] != '[' {
			continue
		}
		items := []T{}
		if err := json.Unmarshal(v, &items); err != nil {
			return out, fmt.Errorf("decode %s.%s: %w", resourceKey, c.key, err)
		}
		out.Shape = c.shape
		out.Items = items
		return out, nil
	}
	return out, nil
}
