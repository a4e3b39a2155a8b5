package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/katian28/ai-bootcamp/internal/prompts"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/spf13/cobra"
)

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List prompt templates and their placeholders",
		Args:  cobra.NoArgs,
		RunE:  runTemplates,
	}

	cmd.Flags().Bool("check", false, "Fail unless every operation has a template")

	return cmd
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	check, _ := cmd.Flags().GetBool("check")

	e, err := setup(cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tSYSTEM\tUSER")
	for _, op := range e.templates.Operations() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", op,
			placeholderList(e.templates, op, prompts.RoleSystem),
			placeholderList(e.templates, op, prompts.RoleUser))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if check {
		if err := e.templates.Require(rewrite.Operations()...); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d operations covered\n", len(rewrite.Operations()))
	}
	return nil
}

// placeholderList describes one template for the listing: its placeholders,
// "-" when it has none, or "(missing)" when the role is not defined.
func placeholderList(set *prompts.Set, op string, role prompts.Role) string {
	names, err := set.Placeholders(op, role)
	switch {
	case err != nil:
		return "(missing)"
	case len(names) == 0:
		return "-"
	default:
		return strings.Join(names, ", ")
	}
}
