/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package maphelpers

import (
	"encoding/json"
	"fmt"
)

// CopyMap performs a deep copy of map and nested maps and slices.
func CopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}

	cm := make(map[string]interface{}, len(m))

	for k, v := range m {
		cm[k] = CopyValue(v)
	}

	return cm
}

// CopySlice performs a deep copy of slice and nested maps and slices.
func CopySlice(s []interface{}) []interface{} {
	if s == nil {
		return nil
	}

	cs := make([]interface{}, len(s))

	for i, v := range s {
		cs[i] = CopyValue(v)
	}

	return cs
}

// CopyValue deep copies JSON-like values; scalars are returned as is.
func CopyValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case map[string]interface{}:
		return CopyMap(tv)
	case []interface{}:
		return CopySlice(tv)
	default:
		return v
	}
}

// NormalizeMap deep copies m through its JSON encoding, so Go typed values such as ints, structs and typed
// slices become their JSON data model equivalents.
func NormalizeMap(m map[string]interface{}) (map[string]interface{}, error) {
	if m == nil {
		return nil, nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var normalized map[string]interface{}

	if err = json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("unmarshal document: %w", err)
	}

	return normalized, nil
}
