package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <action> [text]",
		Short: "Rewrite one email and print the result",
		Long: `Rewrite one email with the generation model. Action is one of
shorten, lengthen or tone. The email is read from the text argument, from
--file, or from stdin when neither is given.

Example:
  mailedit generate tone --tone friendly "Send me the report by Friday."`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runGenerate,
	}

	cmd.Flags().StringP("tone", "t", "", "Target tone for the tone action ("+strings.Join(rewrite.Tones, ", ")+")")
	cmd.Flags().StringP("file", "f", "", "Read the email from this file (- for stdin)")
	cmd.Flags().StringP("model", "m", "", "Generation model (default from config)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tone, _ := cmd.Flags().GetString("tone")
	file, _ := cmd.Flags().GetString("file")
	model, _ := cmd.Flags().GetString("model")

	text, err := emailText(cmd, args[1:], file)
	if err != nil {
		return err
	}

	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	if model == "" {
		model = e.cfg.Model
	}
	o, err := e.orchestrator(model)
	if err != nil {
		return err
	}

	out, ok, err := o.Generate(cmd.Context(), rewrite.Request{
		Action: rewrite.Action(args[0]),
		Text:   text,
		Tone:   tone,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("generate %s: no response from %s (see log)", args[0], model)
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// emailText picks the email from a positional argument, a file, or stdin.
func emailText(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) > 0 && file != "":
		return "", errors.New("give the email as an argument or with --file, not both")
	case len(args) > 0:
		return args[0], nil
	case file != "":
		return readInput(cmd, file)
	default:
		return readInput(cmd, "-")
	}
}
