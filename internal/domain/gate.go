package domain

const ReasonActiveRequiresLevel2 = "Active nodes require Level-2 completion"

// GateResult is the outcome of the Level-2 completeness gate.
type GateResult struct {
	IsComplete bool     `json:"is_complete"`
	Reasons    []string `json:"reasons"`
	Score      int      `json:"score"`
}

type level2Field struct {
	name  string
	value func(n *Node) string
}

// Order matters: reasons are reported in this sequence.
var level2Fields = []level2Field{
	{"causal_chain", func(n *Node) string { return n.CausalChain }},
	{"boundary_condition", func(n *Node) string { return n.BoundaryCondition }},
	{"failure_mode", func(n *Node) string { return n.FailureMode }},
}

func MissingLevel2Reason(field string) string {
	return "Missing " + field + " (Level 2)"
}

// EvaluateGate reports whether n passes the Level-2 gate. It never changes
// the node; an Active node that fails only gets an extra diagnostic reason.
func EvaluateGate(n *Node) GateResult {
	reasons := []string{}
	for _, f := range level2Fields {
		if isBlank(f.value(n)) {
			reasons = append(reasons, MissingLevel2Reason(f.name))
		}
	}
	complete := len(reasons) == 0

	if n.Status == StatusActive && !complete {
		reasons = append(reasons, ReasonActiveRequiresLevel2)
	}

	return GateResult{
		IsComplete: complete,
		Reasons:    reasons,
		Score:      ComputeScore(n),
	}
}
