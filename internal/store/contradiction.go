package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/rks/internal/domain"
)

const ContradictionsFile = "contradictions.jsonl"

type ContradictionStore struct {
	log *appendLog[domain.Contradiction]
}

func NewContradictionStore(dir string) *ContradictionStore {
	return &ContradictionStore{
		log: newAppendLog(filepath.Join(dir, ContradictionsFile), checkContradiction),
	}
}

func (s *ContradictionStore) Append(ctx context.Context, c *domain.Contradiction) error {
	return s.log.append(ctx, c)
}

func (s *ContradictionStore) ListAll(ctx context.Context) ([]domain.Contradiction, error) {
	return s.log.list(ctx)
}

func checkContradiction(c *domain.Contradiction) error {
	var problems []string
	if c.ContradictionID == "" {
		problems = append(problems, "missing contradiction_id")
	}
	if c.NodeA == "" {
		problems = append(problems, "missing node_a")
	}
	if c.NodeB == "" {
		problems = append(problems, "missing node_b")
	}
	if c.CreatedAt.IsZero() {
		problems = append(problems, "missing created_at")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}
