package handlers

import (
	"net/url"
	"testing"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"a", []string{"a"}},
		{"a\nb", []string{"a", "b"}},
		{" a \r\n\n b\n\n", []string{"a", "b"}},
		{"\n\n  \n", []string{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitLines(tt.in), "SplitLines(%q)", tt.in)
	}
}

func TestParseTruthy(t *testing.T) {
	for _, v := range []string{"on", "true", "1", "yes", "YES", " True "} {
		assert.True(t, ParseTruthy(v), v)
	}
	for _, v := range []string{"", "off", "false", "0", "no", "y"} {
		assert.False(t, ParseTruthy(v), v)
	}
}

func TestPatchFromForm_OnlyPresentKeys(t *testing.T) {
	p := PatchFromForm(url.Values{})
	assert.True(t, p.IsEmpty())

	p = PatchFromForm(url.Values{
		"definition":   {""},
		"linked_nodes": {"x\ny"},
		"status":       {" Active "},
	})
	require.NotNil(t, p.Definition)
	assert.Equal(t, "", *p.Definition)
	require.NotNil(t, p.LinkedNodes)
	assert.Equal(t, []string{"x", "y"}, *p.LinkedNodes)
	require.NotNil(t, p.Status)
	assert.Equal(t, domain.StatusActive, *p.Status)

	assert.Nil(t, p.Title)
	assert.Nil(t, p.Layer)
	assert.Nil(t, p.EvidenceExamples)
	assert.Nil(t, p.CrossDomainValidated)
}

func TestPatchFromForm_CheckboxValue(t *testing.T) {
	p := PatchFromForm(url.Values{"cross_domain_validated": {"off"}})
	require.NotNil(t, p.CrossDomainValidated)
	assert.False(t, *p.CrossDomainValidated)
}

func TestRunFromForm(t *testing.T) {
	req := runFromForm(url.Values{"problem": {"p"}, "suspected_layer": {"  "}})
	assert.Nil(t, req.SuspectedLayer)
	assert.Equal(t, []string{}, req.RelatedNodes)

	req = runFromForm(url.Values{"problem": {"p"}, "suspected_layer": {"Action"}})
	require.NotNil(t, req.SuspectedLayer)
	assert.Equal(t, domain.LayerAction, *req.SuspectedLayer)
}

func TestCreateNodeFromForm(t *testing.T) {
	req := createNodeFromForm(url.Values{
		"title":                  {"T"},
		"evidence_examples":      {"one\ntwo"},
		"cross_domain_validated": {"on"},
	})
	assert.Equal(t, "T", req.Title)
	assert.Equal(t, domain.Layer(""), req.Layer)
	assert.Equal(t, []string{"one", "two"}, req.EvidenceExamples)
	assert.True(t, req.CrossDomainValidated)
}
