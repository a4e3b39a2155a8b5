package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/spf13/cobra"
)

func newJudgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "judge <metric>",
		Short: "Rate an edited email against its original",
		Long: `Rate an edited email against its original on one metric: faithfulness,
completeness or conciseness. A structured verdict is printed as JSON; when the
judge's reply cannot be parsed its raw text is printed instead.

Example:
  mailedit judge conciseness --original original.txt --candidate edited.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runJudge,
	}

	cmd.Flags().String("original", "", "File holding the original email (- for stdin)")
	cmd.Flags().String("candidate", "", "File holding the edited email (- for stdin)")
	_ = cmd.MarkFlagRequired("original")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}

func runJudge(cmd *cobra.Command, args []string) error {
	originalPath, _ := cmd.Flags().GetString("original")
	candidatePath, _ := cmd.Flags().GetString("candidate")
	if originalPath == "-" && candidatePath == "-" {
		return errors.New("only one of --original and --candidate can read stdin")
	}

	original, err := readInput(cmd, originalPath)
	if err != nil {
		return err
	}
	candidate, err := readInput(cmd, candidatePath)
	if err != nil {
		return err
	}

	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	o, err := e.orchestrator(e.cfg.Model)
	if err != nil {
		return err
	}

	j, err := o.Judge(cmd.Context(), rewrite.Metric(args[0]), original, candidate)
	if err != nil {
		return err
	}
	if j == nil {
		return fmt.Errorf("judge %s: no response from %s (see log)", args[0], e.cfg.JudgeModelOrDefault())
	}

	out := cmd.OutOrStdout()
	if !j.Structured() {
		fmt.Fprintln(out, j.Raw)
		return nil
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(j.Verdict)
}
