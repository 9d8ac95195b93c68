package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(id, title string, at time.Time) *domain.Node {
	return &domain.Node{
		NodeID:    id,
		Layer:     domain.LayerOntology,
		Title:     title,
		Status:    domain.StatusExplore,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func writeLog(t *testing.T, dir, file, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestNodeStore_ListAllMissingFile(t *testing.T) {
	s := NewNodeStore(t.TempDir())

	nodes, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestNodeStore_AppendCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := NewNodeStore(dir)
	now := time.Now().UTC()

	require.NoError(t, s.Append(context.Background(), newTestNode("n-1", "Gravity", now)))

	_, err := os.Stat(filepath.Join(dir, NodesFile))
	require.NoError(t, err)
}

func TestNodeStore_AppendPreservesOrder(t *testing.T) {
	ctx := context.Background()
	s := NewNodeStore(t.TempDir())
	now := time.Now().UTC()

	require.NoError(t, s.Append(ctx, newTestNode("n-1", "first", now)))
	require.NoError(t, s.Append(ctx, newTestNode("n-2", "second", now)))
	require.NoError(t, s.Append(ctx, newTestNode("n-1", "first v2", now)))

	nodes, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, "first", nodes[0].Title)
	assert.Equal(t, "second", nodes[1].Title)
	assert.Equal(t, "first v2", nodes[2].Title)
}

func TestNodeStore_OneLinePerRecord(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewNodeStore(dir)
	now := time.Now().UTC()

	n := newTestNode("n-1", "multi\nline title", now)
	n.Definition = "line one\nline two"
	require.NoError(t, s.Append(ctx, n))
	require.NoError(t, s.Append(ctx, newTestNode("n-2", "other", now)))

	data, err := os.ReadFile(filepath.Join(dir, NodesFile))
	require.NoError(t, err)
	lines := 0
	for _, b := range data {
		if b == '\n' {
			lines++
		}
	}
	assert.Equal(t, 2, lines)
}

func TestNodeStore_EmptySlicesSerialiseAsArrays(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewNodeStore(dir)

	require.NoError(t, s.Append(ctx, newTestNode("n-1", "Gravity", time.Now().UTC())))

	data, err := os.ReadFile(filepath.Join(dir, NodesFile))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"linked_nodes":[]`)
	assert.NotContains(t, string(data), "null")
}

func TestNodeStore_GetByIDLatestWins(t *testing.T) {
	ctx := context.Background()
	s := NewNodeStore(t.TempDir())
	now := time.Now().UTC()

	require.NoError(t, s.Append(ctx, newTestNode("n-1", "v1", now)))
	require.NoError(t, s.Append(ctx, newTestNode("n-2", "other", now)))
	require.NoError(t, s.Append(ctx, newTestNode("n-1", "v2", now.Add(time.Second))))

	n, err := s.GetByID(ctx, "n-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", n.Title)
}

func TestNodeStore_GetByIDNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewNodeStore(t.TempDir())
	require.NoError(t, s.Append(ctx, newTestNode("n-1", "v1", time.Now().UTC())))

	_, err := s.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNodeStore_ListAllIdempotent(t *testing.T) {
	ctx := context.Background()
	s := NewNodeStore(t.TempDir())
	now := time.Now().UTC()
	require.NoError(t, s.Append(ctx, newTestNode("n-1", "a", now)))
	require.NoError(t, s.Append(ctx, newTestNode("n-2", "b", now)))

	first, err := s.ListAll(ctx)
	require.NoError(t, err)
	second, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNodeStore_SkipsBlankLinesAndUnknownFields(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, NodesFile, `{"node_id":"aaa-001","layer":"Mechanism","title":"Lever","status":"Build","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z","future_field":{"nested":true}}

   
{"node_id":"aaa-002","layer":"Domain","title":"Pulley","status":"Explore","created_at":"2025-01-15T10:31:00Z","updated_at":"2025-01-15T10:31:00Z"}
`)

	nodes, err := NewNodeStore(dir).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "Lever", nodes[0].Title)
	assert.Equal(t, domain.LayerDomain, nodes[1].Layer)
	assert.Equal(t, []string{}, nodes[1].LinkedNodes, "missing list fields default to empty")
	assert.False(t, nodes[1].CrossDomainValidated)
}

func TestNodeStore_MissingStatusDefaultsToExplore(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, NodesFile, `{"node_id":"n1","layer":"Ontology","title":"Gravity","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
`)

	nodes, err := NewNodeStore(dir).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, domain.StatusExplore, nodes[0].Status)

	n, err := NewNodeStore(dir).GetByID(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExplore, n.Status)
}

func TestNodeStore_ScoreRecomputedOnRead(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, NodesFile, `{"node_id":"n1","layer":"Ontology","title":"Gravity","definition":"Attraction between masses","evidence_examples":["apple"],"node_maturity_score":0,"status":"Explore","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}
`)

	nodes, err := NewNodeStore(dir).ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, 4, nodes[0].NodeMaturityScore)
	assert.Equal(t, domain.ComputeScore(&nodes[0]), nodes[0].NodeMaturityScore)
}

func TestNodeStore_LastLineWithoutNewline(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, NodesFile, `{"node_id":"aaa-001","layer":"Action","title":"Lever","status":"Build","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`)

	nodes, err := NewNodeStore(dir).ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, nodes, 1)
}

func TestNodeStore_Corruption(t *testing.T) {
	valid := `{"node_id":"ok","layer":"Ontology","title":"ok","status":"Explore","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`

	tests := []struct {
		name     string
		line     string
		wantLine int
	}{
		{"invalid json", "not valid json at all", 2},
		{"unknown layer", `{"node_id":"x","layer":"Physics","title":"t","status":"Explore","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`, 2},
		{"unknown status", `{"node_id":"x","layer":"Ontology","title":"t","status":"Done","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`, 2},
		{"missing node_id", `{"layer":"Ontology","title":"t","status":"Explore","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`, 2},
		{"missing timestamps", `{"node_id":"x","layer":"Ontology","title":"t","status":"Explore"}`, 2},
		{"score out of range", `{"node_id":"x","layer":"Ontology","title":"t","status":"Explore","node_maturity_score":9,"created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`, 2},
		{"wrong field type", `{"node_id":"x","layer":"Ontology","title":"t","status":"Explore","linked_nodes":"a,b","created_at":"2025-01-15T10:30:00Z","updated_at":"2025-01-15T10:30:00Z"}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeLog(t, dir, NodesFile, valid+"\n"+tt.line+"\n"+valid+"\n")

			nodes, err := NewNodeStore(dir).ListAll(context.Background())
			require.Error(t, err)
			assert.Nil(t, nodes, "no partial results on corruption")
			assert.ErrorIs(t, err, ErrDataCorruption)

			var ce *CorruptionError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.wantLine, ce.Line)
			assert.Equal(t, filepath.Join(dir, NodesFile), ce.Path)
		})
	}
}

func TestNodeStore_GetByIDPropagatesCorruption(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, NodesFile, "{broken\n")

	_, err := NewNodeStore(dir).GetByID(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDataCorruption)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNodeStore_AppendIOError(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for this user")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	err := NewNodeStore(dir).Append(context.Background(), newTestNode("n-1", "t", time.Now().UTC()))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.NotErrorIs(t, err, ErrDataCorruption)
}

func TestNodeStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewNodeStore(t.TempDir())
	assert.ErrorIs(t, s.Append(ctx, newTestNode("n-1", "t", time.Now().UTC())), context.Canceled)
	_, err := s.ListAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
