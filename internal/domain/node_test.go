package domain

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestNode_Apply(t *testing.T) {
	created := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	base := Node{
		NodeID:      "n-1",
		Layer:       LayerMechanism,
		Title:       "Gravity",
		Definition:  "old",
		LinkedNodes: []string{"a"},
		Status:      StatusExplore,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	active := StatusActive
	linked := []string{"x", "y"}
	validated := true
	got := base.Apply(NodePatch{
		Definition:           strPtr("new"),
		LinkedNodes:          &linked,
		Status:               &active,
		CrossDomainValidated: &validated,
	})

	if got.Definition != "new" {
		t.Errorf("Definition = %q, want new", got.Definition)
	}
	if got.Title != "Gravity" || got.Layer != LayerMechanism {
		t.Errorf("absent fields changed: title=%q layer=%q", got.Title, got.Layer)
	}
	if got.Status != StatusActive || !got.CrossDomainValidated {
		t.Errorf("status=%s validated=%v", got.Status, got.CrossDomainValidated)
	}
	if len(got.LinkedNodes) != 2 || got.LinkedNodes[0] != "x" {
		t.Errorf("LinkedNodes = %v", got.LinkedNodes)
	}
	if got.NodeID != "n-1" || !got.CreatedAt.Equal(created) {
		t.Error("identity fields must survive a patch")
	}

	// The patch slice and the original node must not share storage with the result.
	linked[0] = "mutated"
	if got.LinkedNodes[0] != "x" {
		t.Error("result aliases the patch slice")
	}
	if base.Definition != "old" || base.LinkedNodes[0] != "a" {
		t.Error("Apply mutated the receiver")
	}
}

func TestNode_ApplyEmptyStringClearsField(t *testing.T) {
	base := Node{Definition: "something"}
	got := base.Apply(NodePatch{Definition: strPtr("")})
	if got.Definition != "" {
		t.Errorf("Definition = %q, want empty", got.Definition)
	}
}

func TestNodePatch_IsEmpty(t *testing.T) {
	if !(NodePatch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (NodePatch{Title: strPtr("t")}).IsEmpty() {
		t.Error("patch with title should not be empty")
	}
}

func TestNode_Normalize(t *testing.T) {
	var n Node
	n.Normalize()
	if n.LinkedNodes == nil || n.AssumptionLedger == nil || n.EvidenceExamples == nil {
		t.Error("Normalize left a nil slice")
	}
}

func TestValidLayer(t *testing.T) {
	for _, l := range AllLayers() {
		if !ValidLayer(string(l)) {
			t.Errorf("ValidLayer(%q) = false, want true", l)
		}
	}

	invalid := []string{"", "ontology", "ONTOLOGY", "Physics"}
	for _, l := range invalid {
		if ValidLayer(l) {
			t.Errorf("ValidLayer(%q) = true, want false", l)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"Explore", "Build", "Active"} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "active", "Done"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}
