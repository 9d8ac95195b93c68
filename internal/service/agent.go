package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/Harshitk-cp/rks/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNodeNotFound = errors.New("node not found")
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultRecentRuns is how many runs the recent-runs view shows.
const DefaultRecentRuns = 20

// GateExplanation is the read-only diagnostic view of a node's gates.
type GateExplanation struct {
	Score      int      `json:"score"`
	IsComplete bool     `json:"is_complete"`
	Reasons    []string `json:"reasons"`
	CanExpand  bool     `json:"can_expand"`
}

// AgentService is the single entry point for callers. It applies scoring and
// the Level-2 gate on every mutation before anything reaches storage.
type AgentService struct {
	nodes          domain.NodeStore
	contradictions domain.ContradictionStore
	runs           domain.RunStore
	logger         *zap.Logger

	patchLocks *keyedMutex
	now        func() time.Time
	newID      func() string
}

func NewAgentService(ns domain.NodeStore, cs domain.ContradictionStore, rs domain.RunStore, logger *zap.Logger) *AgentService {
	return &AgentService{
		nodes:          ns,
		contradictions: cs,
		runs:           rs,
		logger:         logger,
		patchLocks:     newKeyedMutex(),
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
}

// SetClock replaces the time source. Used by tests that need distinct,
// ordered timestamps.
func (s *AgentService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateNode stores a fresh node. The Level-2 gate is deliberately not
// applied here: a node may be created Active even when incomplete.
func (s *AgentService) CreateNode(ctx context.Context, req domain.CreateNodeRequest) (*domain.Node, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Definition = strings.TrimSpace(req.Definition)
	req.MechanismHint = strings.TrimSpace(req.MechanismHint)
	req.DomainContext = strings.TrimSpace(req.DomainContext)

	if req.Layer == "" {
		req.Layer = domain.LayerOntology
	}
	if req.Status == "" {
		req.Status = domain.StatusExplore
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	now := s.now()
	draft := domain.Node{
		NodeID:               s.newID(),
		Layer:                req.Layer,
		Title:                req.Title,
		Definition:           req.Definition,
		CausalChain:          req.CausalChain,
		BoundaryCondition:    req.BoundaryCondition,
		FailureMode:          req.FailureMode,
		MechanismHint:        req.MechanismHint,
		DomainContext:        req.DomainContext,
		LinkedNodes:          req.LinkedNodes,
		AssumptionLedger:     req.AssumptionLedger,
		EvidenceExamples:     req.EvidenceExamples,
		Status:               req.Status,
		CrossDomainValidated: req.CrossDomainValidated,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	node := draft.Clone()
	n := &node
	n.NodeMaturityScore = domain.ComputeScore(n)

	if err := s.nodes.Append(ctx, n); err != nil {
		return nil, err
	}
	nodesCreated.Inc()

	s.logger.Info("node created",
		zap.String("node_id", n.NodeID),
		zap.String("layer", string(n.Layer)),
		zap.String("status", string(n.Status)),
		zap.Int("score", n.NodeMaturityScore))

	return n, nil
}

// PatchNode appends a new version of the node with only the patch's present
// fields changed. A requested Active status that fails the gate is rewritten
// to Build rather than rejected.
func (s *AgentService) PatchNode(ctx context.Context, id string, patch domain.NodePatch) (*domain.Node, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", ErrInvalidInput)
		}
		patch.Title = &title
	}
	if err := checkRequest(patch); err != nil {
		return nil, err
	}

	unlock := s.patchLocks.Lock(id)
	defer unlock()

	current, err := s.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}

	next := current.Apply(patch)
	next.UpdatedAt = s.now()
	next.NodeMaturityScore = domain.ComputeScore(&next)

	gate := domain.EvaluateGate(&next)
	if next.Status == domain.StatusActive && !gate.IsComplete {
		next.Status = domain.StatusBuild
		nodesDemoted.Inc()
		s.logger.Info("active status rewritten to build",
			zap.String("node_id", id),
			zap.Strings("reasons", gate.Reasons))
	}

	if err := s.nodes.Append(ctx, &next); err != nil {
		return nil, err
	}
	nodesPatched.Inc()

	s.logger.Debug("node patched",
		zap.String("node_id", id),
		zap.String("status", string(next.Status)),
		zap.Int("score", next.NodeMaturityScore))

	return &next, nil
}

func (s *AgentService) GetNode(ctx context.Context, id string) (*domain.Node, error) {
	n, err := s.nodes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, id)
		}
		return nil, err
	}
	return n, nil
}

// ListLatestNodes collapses the log to the newest version of each node and
// orders them most recently updated first.
func (s *AgentService) ListLatestNodes(ctx context.Context) ([]domain.Node, error) {
	all, err := s.nodes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(all))
	latest := make([]domain.Node, 0, len(all))
	for _, n := range all {
		if i, ok := index[n.NodeID]; ok {
			latest[i] = n
			continue
		}
		index[n.NodeID] = len(latest)
		latest = append(latest, n)
	}

	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].UpdatedAt.After(latest[j].UpdatedAt)
	})
	return latest, nil
}

// CreateContradiction records a tension between two existing nodes. This is
// the only place node references are checked for existence.
func (s *AgentService) CreateContradiction(ctx context.Context, req domain.CreateContradictionRequest) (*domain.Contradiction, error) {
	req.NodeA = strings.TrimSpace(req.NodeA)
	req.NodeB = strings.TrimSpace(req.NodeB)
	req.ConditionA = strings.TrimSpace(req.ConditionA)
	req.ConditionB = strings.TrimSpace(req.ConditionB)
	req.ResolutionTrigger = strings.TrimSpace(req.ResolutionTrigger)

	if err := checkRequest(req); err != nil {
		return nil, err
	}

	for _, id := range []string{req.NodeA, req.NodeB} {
		if _, err := s.GetNode(ctx, id); err != nil {
			return nil, err
		}
	}

	c := &domain.Contradiction{
		ContradictionID:   s.newID(),
		NodeA:             req.NodeA,
		NodeB:             req.NodeB,
		ConditionA:        req.ConditionA,
		ConditionB:        req.ConditionB,
		ResolutionTrigger: req.ResolutionTrigger,
		CreatedAt:         s.now(),
	}
	if err := s.contradictions.Append(ctx, c); err != nil {
		return nil, err
	}
	contradictionsCreated.Inc()

	s.logger.Info("contradiction recorded",
		zap.String("contradiction_id", c.ContradictionID),
		zap.String("node_a", c.NodeA),
		zap.String("node_b", c.NodeB))

	return c, nil
}

func (s *AgentService) ListContradictions(ctx context.Context) ([]domain.Contradiction, error) {
	return s.contradictions.ListAll(ctx)
}

// LogRun stores a run as given. Related node ids are not checked.
func (s *AgentService) LogRun(ctx context.Context, req domain.LogRunRequest) (*domain.RunLog, error) {
	if strings.TrimSpace(req.Problem) == "" {
		return nil, fmt.Errorf("%w: problem is required", ErrInvalidInput)
	}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	related := make([]string, len(req.RelatedNodes))
	copy(related, req.RelatedNodes)

	r := &domain.RunLog{
		RunID:          s.newID(),
		Problem:        req.Problem,
		Prediction:     req.Prediction,
		Outcome:        req.Outcome,
		Delta:          req.Delta,
		SuspectedLayer: req.SuspectedLayer,
		RelatedNodes:   related,
		Notes:          req.Notes,
		CreatedAt:      s.now(),
	}
	if err := s.runs.Append(ctx, r); err != nil {
		return nil, err
	}
	runsLogged.Inc()

	s.logger.Debug("run logged", zap.String("run_id", r.RunID))
	return r, nil
}

func (s *AgentService) ListRuns(ctx context.Context) ([]domain.RunLog, error) {
	return s.runs.ListAll(ctx)
}

// ListRecentRuns returns at most limit runs, newest first.
func (s *AgentService) ListRecentRuns(ctx context.Context, limit int) ([]domain.RunLog, error) {
	all, err := s.runs.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultRecentRuns
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}

	recent := make([]domain.RunLog, len(all))
	for i := range all {
		recent[i] = all[len(all)-1-i]
	}
	return recent, nil
}

func (s *AgentService) CanExpand(n *domain.Node) bool {
	return domain.CanExpand(n)
}

func (s *AgentService) ExplainGates(n *domain.Node) GateExplanation {
	gate := domain.EvaluateGate(n)
	return GateExplanation{
		Score:      gate.Score,
		IsComplete: gate.IsComplete,
		Reasons:    gate.Reasons,
		CanExpand:  domain.CanExpand(n),
	}
}

// ExplainNode explains the gates of the latest version of a stored node.
func (s *AgentService) ExplainNode(ctx context.Context, id string) (*GateExplanation, error) {
	n, err := s.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	exp := s.ExplainGates(n)
	return &exp, nil
}
