package entity

import (
	"encoding/json"
	"testing"
)

func TestRecord_HasID(t *testing.T) {
	tests := map[string]struct {
		id   any
		want bool
	}{
		"missing":       {id: nil, want: false},
		"number":        {id: json.Number("99"), want: true},
		"zero number":   {id: json.Number("0"), want: false},
		"float":         {id: float64(7), want: true},
		"zero float":    {id: float64(0), want: false},
		"string":        {id: "abc-1", want: true},
		"blank string":  {id: "  ", want: false},
		"boolean false": {id: false, want: false},
		"boolean true":  {id: true, want: false},
		"object":        {id: map[string]any{"value": json.Number("1")}, want: false},
		"list":          {id: []any{json.Number("1")}, want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := Record{"id": tt.id}
			if got := r.HasID(); got != tt.want {
				t.Fatalf("HasID() with %#v = %v, want %v", tt.id, got, tt.want)
			}
			if !tt.want && r.IDString() != "" {
				t.Fatalf("expected empty IDString for %#v, got %q", tt.id, r.IDString())
			}
		})
	}
}

func TestRecord_String(t *testing.T) {
	r := Record{"email": "a@x.com", "phone": json.Number("821234567"), "active": true}
	if r.String("email") != "a@x.com" {
		t.Fatalf("expected string field, got %q", r.String("email"))
	}
	if r.String("phone") != "821234567" {
		t.Fatalf("expected numeric field as text, got %q", r.String("phone"))
	}
	if r.String("active") != "" || r.String("missing") != "" {
		t.Fatalf("expected empty for non-text fields")
	}
}
