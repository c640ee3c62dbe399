package model

import (
	"strings"
	"testing"
)

func TestValidateDocument_AcceptsMinimalDocument(t *testing.T) {
	raw := `{
		"data": {"personal": {"full_name": "Ada"}},
		"sections": [
			{"id": "s1", "component": "personal", "visible": true, "order": 0}
		]
	}`
	if err := ValidateDocument([]byte(raw)); err != nil {
		t.Fatalf("minimal document should validate: %v", err)
	}
}

func TestValidateDocument_RejectsUnknownComponent(t *testing.T) {
	raw := `{
		"data": {},
		"sections": [
			{"id": "s1", "component": "hologram"}
		]
	}`
	err := ValidateDocument([]byte(raw))
	if err == nil {
		t.Fatal("unknown component must be rejected")
	}
	if !strings.Contains(err.Error(), "schema validation failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateDocument_RejectsMissingSections(t *testing.T) {
	if err := ValidateDocument([]byte(`{"data": {}}`)); err == nil {
		t.Fatal("document without sections must be rejected")
	}
}

func TestValidateDocument_RejectsNonPositivePaperSize(t *testing.T) {
	raw := `{
		"data": {},
		"sections": [],
		"customization": {"layout": {"page_width_in": 0}}
	}`
	if err := ValidateDocument([]byte(raw)); err == nil {
		t.Fatal("zero paper width must be rejected")
	}
}
