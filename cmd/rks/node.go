package main

import (
	"strings"

	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/spf13/cobra"
)

// Field flags shared by `node create` and `node patch`.
const (
	flagLayer             = "layer"
	flagTitle             = "title"
	flagDefinition        = "definition"
	flagCausalChain       = "causal-chain"
	flagBoundaryCondition = "boundary-condition"
	flagFailureMode       = "failure-mode"
	flagMechanismHint     = "mechanism-hint"
	flagDomainContext     = "domain-context"
	flagLinkedNode        = "linked-node"
	flagAssumption        = "assumption"
	flagEvidence          = "evidence"
	flagStatus            = "status"
	flagCrossDomain       = "cross-domain-validated"
)

func newNodeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Create, patch and inspect knowledge nodes",
	}
	cmd.AddCommand(
		newNodeCreateCmd(c),
		newNodePatchCmd(c),
		newNodeGetCmd(c),
		newNodeListCmd(c),
		newNodeExplainCmd(c),
	)
	return cmd
}

func addNodeFieldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String(flagLayer, "", "layer (Ontology, Mechanism, Domain, Action, Reflection, Governance)")
	f.String(flagTitle, "", "short title")
	f.String(flagDefinition, "", "definition")
	f.String(flagCausalChain, "", "causal chain (Level 2)")
	f.String(flagBoundaryCondition, "", "boundary condition (Level 2)")
	f.String(flagFailureMode, "", "failure mode (Level 2)")
	f.String(flagMechanismHint, "", "mechanism hint")
	f.String(flagDomainContext, "", "domain context")
	f.StringArray(flagLinkedNode, nil, "linked node id (repeatable)")
	f.StringArray(flagAssumption, nil, "assumption ledger entry (repeatable)")
	f.StringArray(flagEvidence, nil, "evidence example (repeatable)")
	f.String(flagStatus, "", "status (Explore, Build, Active)")
	f.Bool(flagCrossDomain, false, "mark the node as validated across domains")
}

func newNodeCreateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := createRequestFromFlags(cmd)
			n, err := c.agent.CreateNode(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), n)
		},
	}
	addNodeFieldFlags(cmd)
	_ = cmd.MarkFlagRequired(flagTitle)
	return cmd
}

func newNodePatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <node-id>",
		Short: "Append a new version of a node with the given fields changed",
		Long: `Only flags that are passed are changed. Passing --status Active on a
node whose Level-2 fields are incomplete stores it as Build instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.agent.PatchNode(cmd.Context(), args[0], patchFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), n)
		},
	}
	addNodeFieldFlags(cmd)
	return cmd
}

func newNodeGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <node-id>",
		Short: "Show the latest version of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := c.agent.GetNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), n)
		},
	}
}

func newNodeListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the latest version of every node, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			nodes, err := c.agent.ListLatestNodes(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), nodes)
		},
	}
}

func newNodeExplainCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <node-id>",
		Short: "Explain a node's score and Level-2 gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := c.agent.ExplainNode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), exp)
		},
	}
}

func createRequestFromFlags(cmd *cobra.Command) domain.CreateNodeRequest {
	f := cmd.Flags()
	str := func(name string) string {
		v, _ := f.GetString(name)
		return v
	}
	list := func(name string) []string {
		v, _ := f.GetStringArray(name)
		return nonBlank(v)
	}
	cross, _ := f.GetBool(flagCrossDomain)

	return domain.CreateNodeRequest{
		Layer:                domain.Layer(str(flagLayer)),
		Title:                str(flagTitle),
		Definition:           str(flagDefinition),
		CausalChain:          str(flagCausalChain),
		BoundaryCondition:    str(flagBoundaryCondition),
		FailureMode:          str(flagFailureMode),
		MechanismHint:        str(flagMechanismHint),
		DomainContext:        str(flagDomainContext),
		LinkedNodes:          list(flagLinkedNode),
		AssumptionLedger:     list(flagAssumption),
		EvidenceExamples:     list(flagEvidence),
		Status:               domain.Status(str(flagStatus)),
		CrossDomainValidated: cross,
	}
}

// patchFromFlags sets a patch field only for flags given on the command
// line. An empty value clears a text field; --linked-node="" clears a list.
func patchFromFlags(cmd *cobra.Command) domain.NodePatch {
	f := cmd.Flags()
	var p domain.NodePatch

	str := func(name string) *string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetString(name)
		return &v
	}
	list := func(name string) *[]string {
		if !f.Changed(name) {
			return nil
		}
		v, _ := f.GetStringArray(name)
		out := nonBlank(v)
		return &out
	}

	if v := str(flagLayer); v != nil {
		l := domain.Layer(*v)
		p.Layer = &l
	}
	p.Title = str(flagTitle)
	p.Definition = str(flagDefinition)
	p.CausalChain = str(flagCausalChain)
	p.BoundaryCondition = str(flagBoundaryCondition)
	p.FailureMode = str(flagFailureMode)
	p.MechanismHint = str(flagMechanismHint)
	p.DomainContext = str(flagDomainContext)
	p.LinkedNodes = list(flagLinkedNode)
	p.AssumptionLedger = list(flagAssumption)
	p.EvidenceExamples = list(flagEvidence)
	if v := str(flagStatus); v != nil {
		s := domain.Status(*v)
		p.Status = &s
	}
	if f.Changed(flagCrossDomain) {
		b, _ := f.GetBool(flagCrossDomain)
		p.CrossDomainValidated = &b
	}
	return p
}

func nonBlank(in []string) []string {
	out := []string{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
