package domain

import "strings"

// ExpansionThreshold is the minimum maturity score a node needs before it
// may spawn linked or child nodes.
const ExpansionThreshold = 3

const (
	minLinkedNodesForTier3 = 3
	maxMaturityScore       = 5
)

// ComputeScore returns the node maturity score (0-5). Tiers are checked
// independently and the highest satisfied tier wins, so a node with three
// linked nodes and no definition still scores 3.
func ComputeScore(n *Node) int {
	score := 0
	if !isBlank(n.Definition) {
		score = 1
	}
	if !isBlank(n.MechanismHint) || !isBlank(n.CausalChain) {
		score = 2
	}
	if countNonBlank(n.LinkedNodes) >= minLinkedNodesForTier3 {
		score = 3
	}
	if countNonBlank(n.EvidenceExamples) >= 1 {
		score = 4
	}
	if n.CrossDomainValidated {
		score = maxMaturityScore
	}
	return score
}

func CanExpand(n *Node) bool {
	return ComputeScore(n) >= ExpansionThreshold
}

func ValidScore(score int) bool {
	return score >= 0 && score <= maxMaturityScore
}

func countNonBlank(items []string) int {
	count := 0
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			count++
		}
	}
	return count
}
