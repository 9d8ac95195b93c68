package domain

import "time"

// RunLog is a logged real-world trial used for reflection.
type RunLog struct {
	RunID          string    `json:"run_id"`
	Problem        string    `json:"problem"`
	Prediction     string    `json:"prediction"`
	Outcome        string    `json:"outcome"`
	Delta          string    `json:"delta"`
	SuspectedLayer *Layer    `json:"suspected_layer"`
	RelatedNodes   []string  `json:"related_nodes"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

type LogRunRequest struct {
	Problem        string   `json:"problem" validate:"required"`
	Prediction     string   `json:"prediction"`
	Outcome        string   `json:"outcome"`
	Delta          string   `json:"delta"`
	SuspectedLayer *Layer   `json:"suspected_layer,omitempty" validate:"omitnil,oneof=Ontology Mechanism Domain Action Reflection Governance"`
	RelatedNodes   []string `json:"related_nodes"`
	Notes          string   `json:"notes"`
}
