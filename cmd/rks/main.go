package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Harshitk-cp/rks/internal/config"
	"github.com/Harshitk-cp/rks/internal/service"
	"github.com/Harshitk-cp/rks/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	_ = config.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	dataDir  string
	logLevel string

	logger *zap.Logger
	agent  *service.AgentService
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "rks",
		Short: "Maintain a reflexive knowledge base of nodes, contradictions and runs",
		Long: `rks records knowledge nodes across six layers, scores their maturity,
and refuses to let a node go Active until its causal chain, boundary
condition and failure mode are written down.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd.ErrOrStderr())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", config.DataDir(), "directory holding the JSONL logs")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")

	root.AddCommand(
		newNodeCmd(c),
		newContradictionCmd(c),
		newRunCmd(c),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setup(stderr io.Writer) error {
	level, err := zapcore.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", c.logLevel, err)
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(stderr), level)
	c.logger = zap.New(core)

	c.agent = service.NewAgentService(
		store.NewNodeStore(c.dataDir),
		store.NewContradictionStore(c.dataDir),
		store.NewRunStore(c.dataDir),
		c.logger,
	)
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
