// Package patch applies partial JSON updates to typed entities.
package patch

import (
	"encoding/json"
	"fmt"
)

// Apply merges patch over item: objects are merged key by key, every other
// value replaces the old one. The "version" key is ignored; it is a
// precondition, not a field to write.
func Apply[T any](item T, patch any) (T, error) {
	var out T

	base, err := toObject(item)
	if err != nil {
		return out, err
	}
	changes, err := toObject(patch)
	if err != nil {
		return out, err
	}
	delete(changes, "version")

	raw, err := json.Marshal(merge(base, changes))
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("apply patch: %w", err)
	}
	return out, nil
}

// Decode turns a payload (struct, map or raw JSON) into T.
func Decode[T any](payload any) (T, error) {
	var zero T
	return Apply(zero, payload)
}

func toObject(v any) (map[string]any, error) {
	var raw []byte
	switch x := v.(type) {
	case nil:
		return map[string]any{}, nil
	case json.RawMessage:
		raw = x
	case []byte:
		raw = x
	case string:
		raw = []byte(x)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		raw = b
	}
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	obj := map[string]any{}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}
	return obj, nil
}

func merge(base, changes map[string]any) map[string]any {
	for k, v := range changes {
		sub, isObj := v.(map[string]any)
		old, wasObj := base[k].(map[string]any)
		if isObj && wasObj {
			base[k] = merge(old, sub)
			continue
		}
		base[k] = v
	}
	return base
}
