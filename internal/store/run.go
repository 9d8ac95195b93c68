package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Harshitk-cp/rks/internal/domain"
)

const RunsFile = "runs.jsonl"

type RunStore struct {
	log *appendLog[domain.RunLog]
}

func NewRunStore(dir string) *RunStore {
	return &RunStore{
		log: newAppendLog(filepath.Join(dir, RunsFile), checkRun),
	}
}

func (s *RunStore) Append(ctx context.Context, r *domain.RunLog) error {
	rec := *r
	if rec.RelatedNodes == nil {
		rec.RelatedNodes = []string{}
	}
	return s.log.append(ctx, &rec)
}

func (s *RunStore) ListAll(ctx context.Context) ([]domain.RunLog, error) {
	return s.log.list(ctx)
}

func checkRun(r *domain.RunLog) error {
	var problems []string
	if r.RunID == "" {
		problems = append(problems, "missing run_id")
	}
	if strings.TrimSpace(r.Problem) == "" {
		problems = append(problems, "missing problem")
	}
	if r.SuspectedLayer != nil && !domain.ValidLayer(string(*r.SuspectedLayer)) {
		problems = append(problems, fmt.Sprintf("unknown suspected_layer %q", *r.SuspectedLayer))
	}
	if r.CreatedAt.IsZero() {
		problems = append(problems, "missing created_at")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	if r.RelatedNodes == nil {
		r.RelatedNodes = []string{}
	}
	return nil
}
