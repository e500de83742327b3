package service

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// The public data APIs disagree on response shape even within one service.
// normalizeItems collapses every observed variant into a flat item list:
//
//	input shape                      -> output
//	{"body":{"items":[{...},...]}}   -> the array elements
//	{"body":{"items":{"item":[..]}}} -> the nested array elements
//	{"body":{"items":{"item":{..}}}} -> one-element list
//	{"body":{"items":{...}}}         -> one-element list (bare object)
//	{"items":...} / {"row":[...]}    -> same rules, unwrapped at top level
//	missing/null items               -> empty list
func normalizeItems(raw []byte) ([]map[string]any, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode response envelope: %w", err)
	}

	// Unwrap the body layer if present.
	if body, ok := envelope["body"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(body, &inner); err == nil {
			envelope = inner
		}
	}

	var itemsRaw json.RawMessage
	for _, key := range []string{"items", "row", "item"} {
		if v, ok := envelope[key]; ok && string(v) != "null" {
			itemsRaw = v
			break
		}
	}
	// Some services nest one more level: {"COOKRCP01": {"row": [...]}}.
	if itemsRaw == nil {
		for _, v := range envelope {
			var inner map[string]json.RawMessage
			if err := json.Unmarshal(v, &inner); err != nil {
				continue
			}
			if rows, ok := inner["row"]; ok && string(rows) != "null" {
				itemsRaw = rows
				break
			}
		}
	}
	if itemsRaw == nil {
		return nil, nil
	}

	return flattenItems(itemsRaw)
}

func flattenItems(raw json.RawMessage) ([]map[string]any, error) {
	// Array of items.
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	// Single object, possibly wrapping {"item": ...}.
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("unexpected items shape: %w", err)
	}
	if nested, ok := obj["item"]; ok {
		return flattenItems(nested)
	}

	var single map[string]any
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("unexpected item shape: %w", err)
	}
	return []map[string]any{single}, nil
}

// fieldString returns the first non-empty string value among the given keys.
// The APIs mix lowercase and uppercase field names across endpoints.
func fieldString(item map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := item[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// fieldFloat parses the first parseable numeric value among the given keys.
// The recipe API serves numbers as strings.
func fieldFloat(item map[string]any, keys ...string) float64 {
	for _, key := range keys {
		v, ok := item[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case float64:
			return val
		case string:
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return f
			}
		}
	}
	return 0
}
