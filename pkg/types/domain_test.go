package types

import (
	"encoding/json"
	"testing"
)

func TestLanguageWireMarkers(t *testing.T) {
	b, err := json.Marshal(Message{ID: 1, Language: Language{Detecting: true}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if raw["language"] != LanguageDetecting {
		t.Fatalf("language=%v", raw["language"])
	}

	b, _ = json.Marshal(Language{})
	if string(b) != `"unknown"` {
		t.Fatalf("empty language encoded as %s", b)
	}

	b, _ = json.Marshal(Language{Code: "fr", Confidence: 0.9, AllDetected: []DetectedLanguage{{Code: "fr", Confidence: 0.9}}})
	var back Language
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal object: %v", err)
	}
	if !back.Detected() || back.Code != "fr" || len(back.AllDetected) != 1 {
		t.Fatalf("round trip lost data: %+v", back)
	}
}

func TestLanguageRejectsUnknownMarker(t *testing.T) {
	var l Language
	if err := json.Unmarshal([]byte(`"pending"`), &l); err == nil {
		t.Fatalf("expected error for unknown marker")
	}
	if err := json.Unmarshal([]byte(`"detecting..."`), &l); err != nil || !l.Detecting {
		t.Fatalf("detecting marker: %+v err=%v", l, err)
	}
}

func TestLanguageKeepsZeroConfidence(t *testing.T) {
	b, err := json.Marshal(Language{Code: "xx", Confidence: 0})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	c, ok := raw["confidence"]
	if !ok || c != float64(0) {
		t.Fatalf("expected confidence 0 on the wire, got %s", b)
	}
}
