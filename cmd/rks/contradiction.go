package main

import (
	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/spf13/cobra"
)

func newContradictionCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contradiction",
		Aliases: []string{"contra"},
		Short:   "Record and list contradictions between nodes",
	}
	cmd.AddCommand(newContradictionAddCmd(c), newContradictionListCmd(c))
	return cmd
}

func newContradictionAddCmd(c *cli) *cobra.Command {
	var req domain.CreateContradictionRequest

	cmd := &cobra.Command{
		Use:   "add <node-a> <node-b>",
		Short: "Record that two existing nodes contradict each other",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.NodeA, req.NodeB = args[0], args[1]
			out, err := c.agent.CreateContradiction(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().StringVar(&req.ConditionA, "condition-a", "", "condition under which node A holds")
	cmd.Flags().StringVar(&req.ConditionB, "condition-b", "", "condition under which node B holds")
	cmd.Flags().StringVar(&req.ResolutionTrigger, "resolution-trigger", "", "what would resolve the contradiction")
	return cmd
}

func newContradictionListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contradictions in the order they were recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := c.agent.ListContradictions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), all)
		},
	}
}
