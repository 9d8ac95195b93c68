package domain

import "testing"

func TestComputeScore(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want int
	}{
		{"empty node", Node{Title: "Gravity"}, 0},
		{"blank definition", Node{Definition: "   \t"}, 0},
		{"definition only", Node{Definition: "Attraction between masses"}, 1},
		{"mechanism hint", Node{MechanismHint: "curvature"}, 2},
		{"causal chain without definition", Node{CausalChain: "mass -> curvature -> motion"}, 2},
		{"two linked nodes", Node{Definition: "d", LinkedNodes: []string{"a", "b"}}, 1},
		{"three linked nodes no definition", Node{LinkedNodes: []string{"a", "b", "c"}}, 3},
		{"blank linked entries ignored", Node{LinkedNodes: []string{"a", " ", "", "b"}}, 0},
		{"duplicate linked entries count", Node{LinkedNodes: []string{"a", "a", "a"}}, 3},
		{"evidence only", Node{EvidenceExamples: []string{"apple falls"}}, 4},
		{"blank evidence ignored", Node{Definition: "d", EvidenceExamples: []string{"  "}}, 1},
		{"cross domain only", Node{CrossDomainValidated: true}, 5},
		{
			"everything",
			Node{
				Definition:           "d",
				CausalChain:          "c",
				LinkedNodes:          []string{"a", "b", "c"},
				EvidenceExamples:     []string{"e"},
				CrossDomainValidated: true,
			},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeScore(&tt.node)
			if got != tt.want {
				t.Errorf("ComputeScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestComputeScore_Deterministic(t *testing.T) {
	n := Node{Definition: "d", LinkedNodes: []string{"a", "b", "c"}}
	first := ComputeScore(&n)
	for i := 0; i < 10; i++ {
		if got := ComputeScore(&n); got != first {
			t.Fatalf("ComputeScore changed between calls: %d then %d", first, got)
		}
	}
}

func TestComputeScore_AlwaysInRange(t *testing.T) {
	nodes := []Node{
		{},
		{Definition: "d"},
		{CrossDomainValidated: true, EvidenceExamples: []string{"x"}},
	}
	for _, n := range nodes {
		if s := ComputeScore(&n); !ValidScore(s) {
			t.Errorf("score %d out of range", s)
		}
	}
}

func TestCanExpand(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"score 0", Node{}, false},
		{"score 2", Node{MechanismHint: "m"}, false},
		{"score 3", Node{LinkedNodes: []string{"a", "b", "c"}}, true},
		{"score 5", Node{CrossDomainValidated: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanExpand(&tt.node); got != tt.want {
				t.Errorf("CanExpand() = %v, want %v", got, tt.want)
			}
		})
	}
}
