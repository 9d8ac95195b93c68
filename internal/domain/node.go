package domain

import (
	"strings"
	"time"
)

type Layer string

const (
	LayerOntology   Layer = "Ontology"
	LayerMechanism  Layer = "Mechanism"
	LayerDomain     Layer = "Domain"
	LayerAction     Layer = "Action"
	LayerReflection Layer = "Reflection"
	LayerGovernance Layer = "Governance"
)

func AllLayers() []Layer {
	return []Layer{LayerOntology, LayerMechanism, LayerDomain, LayerAction, LayerReflection, LayerGovernance}
}

func ValidLayer(l string) bool {
	switch Layer(l) {
	case LayerOntology, LayerMechanism, LayerDomain, LayerAction, LayerReflection, LayerGovernance:
		return true
	}
	return false
}

type Status string

const (
	StatusExplore Status = "Explore"
	StatusBuild   Status = "Build"
	StatusActive  Status = "Active"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusExplore, StatusBuild, StatusActive:
		return true
	}
	return false
}

// MaxTitleLength is counted in characters, not bytes.
const MaxTitleLength = 200

// Node is one version of a unit of knowledge. Every mutation appends a new
// full version; the latest one for a NodeID is the current state.
type Node struct {
	NodeID               string    `json:"node_id"`
	Layer                Layer     `json:"layer"`
	Title                string    `json:"title"`
	Definition           string    `json:"definition"`
	CausalChain          string    `json:"causal_chain"`
	BoundaryCondition    string    `json:"boundary_condition"`
	FailureMode          string    `json:"failure_mode"`
	MechanismHint        string    `json:"mechanism_hint"`
	DomainContext        string    `json:"domain_context"`
	LinkedNodes          []string  `json:"linked_nodes"`
	AssumptionLedger     []string  `json:"assumption_ledger"`
	EvidenceExamples     []string  `json:"evidence_examples"`
	NodeMaturityScore    int       `json:"node_maturity_score"`
	Status               Status    `json:"status"`
	CrossDomainValidated bool      `json:"cross_domain_validated"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// NodePatch holds the patchable fields of a Node. A nil field is absent and
// leaves the current value untouched.
type NodePatch struct {
	Layer                *Layer    `json:"layer,omitempty" validate:"omitnil,oneof=Ontology Mechanism Domain Action Reflection Governance"`
	Title                *string   `json:"title,omitempty" validate:"omitnil,max=200"`
	Definition           *string   `json:"definition,omitempty"`
	CausalChain          *string   `json:"causal_chain,omitempty"`
	BoundaryCondition    *string   `json:"boundary_condition,omitempty"`
	FailureMode          *string   `json:"failure_mode,omitempty"`
	MechanismHint        *string   `json:"mechanism_hint,omitempty"`
	DomainContext        *string   `json:"domain_context,omitempty"`
	LinkedNodes          *[]string `json:"linked_nodes,omitempty"`
	AssumptionLedger     *[]string `json:"assumption_ledger,omitempty"`
	EvidenceExamples     *[]string `json:"evidence_examples,omitempty"`
	Status               *Status   `json:"status,omitempty" validate:"omitnil,oneof=Explore Build Active"`
	CrossDomainValidated *bool     `json:"cross_domain_validated,omitempty"`
}

func (p NodePatch) IsEmpty() bool {
	return p == NodePatch{}
}

// Apply returns a copy of n with every present patch field overwritten.
// Timestamps and the maturity score are left for the caller to maintain.
func (n *Node) Apply(p NodePatch) Node {
	out := n.Clone()

	if p.Layer != nil {
		out.Layer = *p.Layer
	}
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Definition != nil {
		out.Definition = *p.Definition
	}
	if p.CausalChain != nil {
		out.CausalChain = *p.CausalChain
	}
	if p.BoundaryCondition != nil {
		out.BoundaryCondition = *p.BoundaryCondition
	}
	if p.FailureMode != nil {
		out.FailureMode = *p.FailureMode
	}
	if p.MechanismHint != nil {
		out.MechanismHint = *p.MechanismHint
	}
	if p.DomainContext != nil {
		out.DomainContext = *p.DomainContext
	}
	if p.LinkedNodes != nil {
		out.LinkedNodes = copyStrings(*p.LinkedNodes)
	}
	if p.AssumptionLedger != nil {
		out.AssumptionLedger = copyStrings(*p.AssumptionLedger)
	}
	if p.EvidenceExamples != nil {
		out.EvidenceExamples = copyStrings(*p.EvidenceExamples)
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.CrossDomainValidated != nil {
		out.CrossDomainValidated = *p.CrossDomainValidated
	}
	return out
}

// Clone returns a deep copy so callers can mutate slices freely.
func (n *Node) Clone() Node {
	out := *n
	out.LinkedNodes = copyStrings(n.LinkedNodes)
	out.AssumptionLedger = copyStrings(n.AssumptionLedger)
	out.EvidenceExamples = copyStrings(n.EvidenceExamples)
	return out
}

// Normalize replaces nil slices with empty ones so records always serialise
// as JSON arrays.
func (n *Node) Normalize() {
	if n.LinkedNodes == nil {
		n.LinkedNodes = []string{}
	}
	if n.AssumptionLedger == nil {
		n.AssumptionLedger = []string{}
	}
	if n.EvidenceExamples == nil {
		n.EvidenceExamples = []string{}
	}
}

type CreateNodeRequest struct {
	Layer                Layer    `json:"layer" validate:"omitempty,oneof=Ontology Mechanism Domain Action Reflection Governance"`
	Title                string   `json:"title" validate:"required,max=200"`
	Definition           string   `json:"definition"`
	MechanismHint        string   `json:"mechanism_hint"`
	DomainContext        string   `json:"domain_context"`
	CausalChain          string   `json:"causal_chain"`
	BoundaryCondition    string   `json:"boundary_condition"`
	FailureMode          string   `json:"failure_mode"`
	LinkedNodes          []string `json:"linked_nodes"`
	AssumptionLedger     []string `json:"assumption_ledger"`
	EvidenceExamples     []string `json:"evidence_examples"`
	Status               Status   `json:"status" validate:"omitempty,oneof=Explore Build Active"`
	CrossDomainValidated bool     `json:"cross_domain_validated"`
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func copyStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
