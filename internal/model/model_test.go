package model

import (
	"encoding/json"
	"testing"
)

func TestNewIDLength(t *testing.T) {
	id := NewID()
	if len(id) != 26 {
		t.Errorf("ID length = %d, want 26", len(id))
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestRangeMarshalJSON(t *testing.T) {
	r := Range{Low: 6.5, High: 7.5}
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[6.5,7.5]" {
		t.Errorf("marshaled = %s, want [6.5,7.5]", data)
	}
}

func TestRangeUnmarshalJSON(t *testing.T) {
	var r Range
	if err := json.Unmarshal([]byte("[22,26]"), &r); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if r.Low != 22 || r.High != 26 {
		t.Errorf("Range = %+v, want {22 26}", r)
	}
}

func TestRangeUnmarshalRejectsNonArray(t *testing.T) {
	var r Range
	if err := json.Unmarshal([]byte(`{"low":1}`), &r); err == nil {
		t.Error("expected error for non-array range")
	}
}
