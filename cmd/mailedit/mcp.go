package main

import (
	"os"

	"github.com/katian28/ai-bootcamp/internal/mcpserver"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve generate and judge as MCP tools over stdio",
		Long: `Serve the generate and judge tools to an MCP client over stdin and
stdout. Logs go to stderr, or to --log-file.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	o, err := e.orchestrator(e.cfg.Model)
	if err != nil {
		return err
	}

	e.logger.Info("serving MCP tools over stdio", "model", e.cfg.Model, "judge_model", e.cfg.JudgeModelOrDefault())
	return mcpserver.Serve(mcpserver.New(o, version, e.logger))
}
