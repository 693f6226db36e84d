/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package proof

import (
	"fmt"
)

// Helpers reading JSON-LD expanded node objects, where every property value is an array of value objects,
// node references or nested nodes.

// NodeTypes returns the @type IRIs of an expanded node.
func NodeTypes(node map[string]interface{}) []string {
	var types []string

	switch t := node["@type"].(type) {
	case string:
		types = append(types, t)
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok {
				types = append(types, s)
			}
		}
	}

	return types
}

// NodeValue returns the single literal @value of property. ok is false when the property is absent.
func NodeValue(node map[string]interface{}, property string) (string, bool, error) {
	obj, ok, err := single(node, property)
	if !ok || err != nil {
		return "", ok, err
	}

	v, present := obj["@value"]
	if !present {
		return "", true, fmt.Errorf("%s is not a value object", property)
	}

	s, isString := v.(string)
	if !isString {
		return "", true, fmt.Errorf("%s value is %T, string expected", property, v)
	}

	return s, true, nil
}

// NodeID returns the single @id referenced by property.
func NodeID(node map[string]interface{}, property string) (string, bool, error) {
	obj, ok, err := single(node, property)
	if !ok || err != nil {
		return "", ok, err
	}

	id, isString := obj["@id"].(string)
	if !isString {
		return "", true, fmt.Errorf("%s is not a node reference", property)
	}

	return id, true, nil
}

// NodeObject returns the single node object of property, either a bare reference or an embedded node.
func NodeObject(node map[string]interface{}, property string) (map[string]interface{}, bool, error) {
	return single(node, property)
}

func single(node map[string]interface{}, property string) (map[string]interface{}, bool, error) {
	raw, ok := node[property]
	if !ok {
		return nil, false, nil
	}

	values, isList := raw.([]interface{})
	if !isList {
		values = []interface{}{raw}
	}

	if len(values) != 1 {
		return nil, true, fmt.Errorf("%s has %d values, one expected", property, len(values))
	}

	obj, isObj := values[0].(map[string]interface{})
	if !isObj {
		return nil, true, fmt.Errorf("%s is not an object", property)
	}

	return obj, true, nil
}
