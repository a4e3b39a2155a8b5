package main

import (
	"fmt"
	"os"
	"time"

	"github.com/katian28/ai-bootcamp/internal/llm"
	"github.com/spf13/cobra"
)

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured model endpoint is reachable",
		Args:  cobra.NoArgs,
		RunE:  runPing,
	}
}

func runPing(cmd *cobra.Command, _ []string) error {
	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.cfg.Validate(); err != nil {
		return err
	}
	provider, err := llm.NewProvider(e.cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := provider.Ping(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s reachable in %s\n", provider.Name(), time.Since(start).Round(time.Millisecond))
	return nil
}
