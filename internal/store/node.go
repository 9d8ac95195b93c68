package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Harshitk-cp/rks/internal/domain"
)

const NodesFile = "nodes.jsonl"

type NodeStore struct {
	dir string
	log *appendLog[domain.Node]
}

func NewNodeStore(dir string) *NodeStore {
	return &NodeStore{
		dir: dir,
		log: newAppendLog(filepath.Join(dir, NodesFile), checkNode),
	}
}

func (s *NodeStore) Dir() string {
	return s.dir
}

func (s *NodeStore) Append(ctx context.Context, n *domain.Node) error {
	rec := n.Clone()
	rec.Normalize()
	return s.log.append(ctx, &rec)
}

func (s *NodeStore) ListAll(ctx context.Context) ([]domain.Node, error) {
	return s.log.list(ctx)
}

// GetByID returns the most recently appended version of the node.
func (s *NodeStore) GetByID(ctx context.Context, id string) (*domain.Node, error) {
	nodes, err := s.log.list(ctx)
	if err != nil {
		return nil, err
	}
	for i := len(nodes) - 1; i >= 0; i-- {
		if nodes[i].NodeID == id {
			n := nodes[i]
			return &n, nil
		}
	}
	return nil, ErrNotFound
}

func checkNode(n *domain.Node) error {
	// A missing status takes its default; a present unknown tag is still corrupt.
	if n.Status == "" {
		n.Status = domain.StatusExplore
	}

	var problems []string
	if n.NodeID == "" {
		problems = append(problems, "missing node_id")
	}
	if strings.TrimSpace(n.Title) == "" {
		problems = append(problems, "missing title")
	} else if utf8.RuneCountInString(n.Title) > domain.MaxTitleLength {
		problems = append(problems, "title exceeds 200 characters")
	}
	if !domain.ValidLayer(string(n.Layer)) {
		problems = append(problems, fmt.Sprintf("unknown layer %q", n.Layer))
	}
	if !domain.ValidStatus(string(n.Status)) {
		problems = append(problems, fmt.Sprintf("unknown status %q", n.Status))
	}
	if !domain.ValidScore(n.NodeMaturityScore) {
		problems = append(problems, fmt.Sprintf("node_maturity_score %d out of range", n.NodeMaturityScore))
	}
	if n.CreatedAt.IsZero() {
		problems = append(problems, "missing created_at")
	}
	if n.UpdatedAt.IsZero() {
		problems = append(problems, "missing updated_at")
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	n.Normalize()
	// The score is derived; a stale stored value never reaches callers.
	n.NodeMaturityScore = domain.ComputeScore(n)
	return nil
}
