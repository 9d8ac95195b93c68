package handlers

import (
	"net/url"
	"strings"

	"github.com/Harshitk-cp/rks/internal/domain"
)

// SplitLines turns a newline-delimited form value into its trimmed,
// non-blank lines.
func SplitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// ParseTruthy accepts on, true, 1 and yes (any case) as true.
func ParseTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func createNodeFromForm(form url.Values) domain.CreateNodeRequest {
	return domain.CreateNodeRequest{
		Layer:                domain.Layer(strings.TrimSpace(form.Get("layer"))),
		Title:                form.Get("title"),
		Definition:           form.Get("definition"),
		MechanismHint:        form.Get("mechanism_hint"),
		DomainContext:        form.Get("domain_context"),
		CausalChain:          form.Get("causal_chain"),
		BoundaryCondition:    form.Get("boundary_condition"),
		FailureMode:          form.Get("failure_mode"),
		LinkedNodes:          SplitLines(form.Get("linked_nodes")),
		AssumptionLedger:     SplitLines(form.Get("assumption_ledger")),
		EvidenceExamples:     SplitLines(form.Get("evidence_examples")),
		Status:               domain.Status(strings.TrimSpace(form.Get("status"))),
		CrossDomainValidated: ParseTruthy(form.Get("cross_domain_validated")),
	}
}

// PatchFromForm builds a patch from only the keys present in the form.
func PatchFromForm(form url.Values) domain.NodePatch {
	var p domain.NodePatch

	text := func(key string) *string {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := form.Get(key)
		return &v
	}
	lines := func(key string) *[]string {
		if _, ok := form[key]; !ok {
			return nil
		}
		v := SplitLines(form.Get(key))
		return &v
	}

	if v := text("layer"); v != nil {
		l := domain.Layer(strings.TrimSpace(*v))
		p.Layer = &l
	}
	p.Title = text("title")
	p.Definition = text("definition")
	p.CausalChain = text("causal_chain")
	p.BoundaryCondition = text("boundary_condition")
	p.FailureMode = text("failure_mode")
	p.MechanismHint = text("mechanism_hint")
	p.DomainContext = text("domain_context")
	p.LinkedNodes = lines("linked_nodes")
	p.AssumptionLedger = lines("assumption_ledger")
	p.EvidenceExamples = lines("evidence_examples")
	if v := text("status"); v != nil {
		s := domain.Status(strings.TrimSpace(*v))
		p.Status = &s
	}
	if v := text("cross_domain_validated"); v != nil {
		b := ParseTruthy(*v)
		p.CrossDomainValidated = &b
	}
	return p
}

func contradictionFromForm(form url.Values) domain.CreateContradictionRequest {
	return domain.CreateContradictionRequest{
		NodeA:             form.Get("node_a"),
		NodeB:             form.Get("node_b"),
		ConditionA:        form.Get("condition_a"),
		ConditionB:        form.Get("condition_b"),
		ResolutionTrigger: form.Get("resolution_trigger"),
	}
}

func runFromForm(form url.Values) domain.LogRunRequest {
	req := domain.LogRunRequest{
		Problem:      form.Get("problem"),
		Prediction:   form.Get("prediction"),
		Outcome:      form.Get("outcome"),
		Delta:        form.Get("delta"),
		RelatedNodes: SplitLines(form.Get("related_nodes")),
		Notes:        form.Get("notes"),
	}
	if l := strings.TrimSpace(form.Get("suspected_layer")); l != "" {
		layer := domain.Layer(l)
		req.SuspectedLayer = &layer
	}
	return req
}
