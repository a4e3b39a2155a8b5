package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/katian28/ai-bootcamp/internal/config"
	"github.com/katian28/ai-bootcamp/internal/llm"
	"github.com/katian28/ai-bootcamp/internal/logging"
	"github.com/katian28/ai-bootcamp/internal/prompts"
	"github.com/katian28/ai-bootcamp/internal/rewrite"
	"github.com/katian28/ai-bootcamp/internal/tui"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mailedit",
		Short: "Rewrite emails with a language model and judge the results",
		Long: `mailedit shortens, lengthens or changes the tone of emails using a
chat completion model, then rates each rewrite on faithfulness, completeness
and conciseness with a judge model.

Run without a subcommand to browse the email datasets interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "Path to configuration file (YAML)")
	flags.String("env-file", "", "Path to a .env file (default .env when present)")
	flags.String("templates", "", "Path to a prompt template file (YAML)")
	flags.String("datasets", "", "Directory holding the .jsonl email datasets")
	flags.StringP("log-level", "l", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "json", "Log format (json, text)")
	flags.String("log-file", "", "Append logs to this file instead of stderr")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newJudgeCmd(),
		newTemplatesCmd(),
		newMCPCmd(),
		newPingCmd(),
	)
	rootCmd.Version = version

	return rootCmd
}

// env is the configuration, logger and templates shared by every command.
type env struct {
	cfg       *config.Config
	logger    *slog.Logger
	templates *prompts.Set
	closeLog  func() error
}

func (e *env) Close() error {
	if e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// setup loads configuration in order: config file, .env file, environment
// variables, then flags. Logs go to --log-file when set, otherwise to
// fallback.
func setup(cmd *cobra.Command, fallback io.Writer) (*env, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	envFile, _ := flags.GetString("env-file")
	templatesPath, _ := flags.GetString("templates")
	datasets, _ := flags.GetString("datasets")
	logLevel, _ := flags.GetString("log-level")
	logFormat, _ := flags.GetString("log-format")
	logFile, _ := flags.GetString("log-file")

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if err := config.LoadEnv(envFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv()

	if templatesPath != "" {
		cfg.Templates = templatesPath
	}
	if datasets != "" {
		cfg.Datasets = datasets
	}

	e := &env{cfg: cfg}

	out := fallback
	if logFile != "" {
		f, err := logging.OpenFile(logFile)
		if err != nil {
			return nil, err
		}
		out = f
		e.closeLog = f.Close
	}

	e.logger, err = logging.New(logging.Options{Level: logLevel, Format: logFormat, Output: out})
	if err != nil {
		e.Close()
		return nil, err
	}

	if cfg.Templates != "" {
		e.templates, err = prompts.Load(cfg.Templates)
	} else {
		e.templates, err = prompts.Default()
	}
	if err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// orchestrator builds an orchestrator that generates with model and judges
// with the configured judge model.
func (e *env) orchestrator(model string) (*rewrite.Orchestrator, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(e.cfg)
	if err != nil {
		return nil, err
	}

	generator := llm.NewExchanger(provider, model, e.logger)
	judge := llm.NewExchanger(provider, e.cfg.JudgeModelOrDefault(), e.logger)

	return rewrite.New(e.templates, generator, judge, e.logger)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// The screen belongs to the TUI, so logs are dropped unless --log-file
	// is set.
	e, err := setup(cmd, io.Discard)
	if err != nil {
		return err
	}
	defer e.Close()

	app := tui.NewApp(e.cfg, func(model string) (tui.Rewriter, error) {
		return e.orchestrator(model)
	}, e.logger)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// readInput returns the contents of path, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
