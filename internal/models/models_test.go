package models

import (
	"encoding/json"
	"testing"
)

func TestSupportsEngine(t *testing.T) {
	v := Voice{ID: "Joanna", SupportedEngines: []string{"standard", "neural"}}
	if !v.SupportsEngine(EngineNeural) {
		t.Error("expected neural support")
	}
	if !v.SupportsEngine(EngineStandard) {
		t.Error("expected standard support")
	}

	standardOnly := Voice{ID: "Celine", SupportedEngines: []string{"standard"}}
	if standardOnly.SupportsEngine(EngineNeural) {
		t.Error("Celine must not support neural")
	}
	// Standard is always available, even with an empty engine list
	bare := Voice{ID: "X"}
	if !bare.SupportsEngine(EngineStandard) {
		t.Error("standard must always be supported")
	}
}

func TestSessionPhases(t *testing.T) {
	phases := []SessionPhase{PhaseIdle, PhaseBusy, PhaseSuccess, PhaseFailed}
	for _, phase := range phases {
		if phase == "" {
			t.Errorf("empty phase found")
		}
	}
}

func TestVoiceJSONShape(t *testing.T) {
	data := []byte(`{"id":"Joanna","languageCode":"en-US","languageName":"US English","gender":"Female","supportedEngines":["standard","neural"]}`)

	var v Voice
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if v.ID != "Joanna" || v.LanguageCode != "en-US" {
		t.Errorf("unexpected voice: %+v", v)
	}
	if len(v.SupportedEngines) != 2 {
		t.Errorf("expected 2 engines, got %d", len(v.SupportedEngines))
	}
}
