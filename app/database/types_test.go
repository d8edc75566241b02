package database

import (
	"testing"
)

func TestMarshalStrings(t *testing.T) {
	if result := marshalStrings(nil); result != "[]" {
		t.Errorf("Expected '[]' for nil slice, got: %s", result)
	}
	if result := marshalStrings([]string{}); result != "[]" {
		t.Errorf("Expected '[]' for empty slice, got: %s", result)
	}
	if result := marshalStrings([]string{"breast", "lung"}); result != `["breast","lung"]` {
		t.Errorf("Expected JSON array, got: %s", result)
	}
}

func TestUnmarshalStrings(t *testing.T) {
	if result := unmarshalStrings(""); result != nil {
		t.Errorf("Expected nil for empty input, got: %v", result)
	}
	if result := unmarshalStrings("not json"); result != nil {
		t.Errorf("Expected nil for malformed input, got: %v", result)
	}

	result := unmarshalStrings(`["breast","lung"]`)
	if len(result) != 2 || result[0] != "breast" || result[1] != "lung" {
		t.Errorf("Expected [breast lung], got: %v", result)
	}
}

func TestQuoted(t *testing.T) {
	// A quoted pattern matches the whole JSON array element, so "lung" does
	// not match a stored "lung-adjacent" value
	if result := quoted("lung"); result != `"lung"` {
		t.Errorf("Expected quoted value, got: %s", result)
	}
}
