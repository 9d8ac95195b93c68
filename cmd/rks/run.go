package main

import (
	"github.com/Harshitk-cp/rks/internal/domain"
	"github.com/spf13/cobra"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Log and list reasoning runs",
	}
	cmd.AddCommand(newRunLogCmd(c), newRunListCmd(c))
	return cmd
}

func newRunLogCmd(c *cli) *cobra.Command {
	var (
		req            domain.LogRunRequest
		suspectedLayer string
	)

	cmd := &cobra.Command{
		Use:   "log <problem>",
		Short: "Log a run: the problem, what was predicted and what happened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Problem = args[0]
			req.RelatedNodes = nonBlank(req.RelatedNodes)
			if suspectedLayer != "" {
				l := domain.Layer(suspectedLayer)
				req.SuspectedLayer = &l
			}
			out, err := c.agent.LogRun(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Prediction, "prediction", "", "what was expected")
	f.StringVar(&req.Outcome, "outcome", "", "what happened")
	f.StringVar(&req.Delta, "delta", "", "gap between prediction and outcome")
	f.StringVar(&suspectedLayer, "suspected-layer", "", "layer suspected of causing the delta")
	f.StringArrayVar(&req.RelatedNodes, "related-node", nil, "related node id (repeatable)")
	f.StringVar(&req.Notes, "notes", "", "free-form notes")
	return cmd
}

func newRunListCmd(c *cli) *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List runs in log order, or the most recent first with --recent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				runs []domain.RunLog
				err  error
			)
			if cmd.Flags().Changed("recent") {
				runs, err = c.agent.ListRecentRuns(cmd.Context(), recent)
			} else {
				runs, err = c.agent.ListRuns(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), runs)
		},
	}
	cmd.Flags().IntVar(&recent, "recent", 0, "show at most this many runs, newest first (0 uses the default)")
	return cmd
}
