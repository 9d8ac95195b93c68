package domain

import "time"

// Contradiction records a tension between two nodes. It is written once and
// never changed.
type Contradiction struct {
	ContradictionID   string    `json:"contradiction_id"`
	NodeA             string    `json:"node_a"`
	NodeB             string    `json:"node_b"`
	ConditionA        string    `json:"condition_a"`
	ConditionB        string    `json:"condition_b"`
	ResolutionTrigger string    `json:"resolution_trigger"`
	CreatedAt         time.Time `json:"created_at"`
}

type CreateContradictionRequest struct {
	NodeA             string `json:"node_a" validate:"required"`
	NodeB             string `json:"node_b" validate:"required"`
	ConditionA        string `json:"condition_a"`
	ConditionB        string `json:"condition_b"`
	ResolutionTrigger string `json:"resolution_trigger"`
}
