package tui

import (
	"fmt"
	"strings"

	"github.com/katian28/ai-bootcamp/internal/config"
)

func (a *App) renderSettings() string {
	var b strings.Builder
	cfg := a.state.config

	b.WriteString(a.title("Settings"))
	b.WriteString("\n\n")

	providerName := cfg.Provider
	if provider := config.GetProvider(cfg.Provider); provider != nil {
		providerName = provider.Name
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "(provider default)"
	}
	templates := cfg.Templates
	if templates == "" {
		templates = "(built in)"
	}

	configLines := []string{
		fmt.Sprintf("  Provider:     %s", providerName),
		fmt.Sprintf("  Endpoint:     %s", truncate(baseURL, 40)),
		fmt.Sprintf("  API Key:      %s", cfg.MaskedAPIKey()),
		"",
		fmt.Sprintf("  Model:        %s", a.state.currentModel()),
		fmt.Sprintf("  Models:       %s", strings.Join(a.state.models, ", ")),
		fmt.Sprintf("  Judge model:  %s", cfg.JudgeModelOrDefault()),
		fmt.Sprintf("  Timeout:      %s", cfg.Timeout),
		"",
		fmt.Sprintf("  Templates:    %s", truncate(templates, 40)),
		fmt.Sprintf("  Datasets:     %s", truncate(cfg.Datasets, 40)),
	}

	configBox := styleBox.Copy().
		Width(a.boxWidth(60)).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(a.center(configBox))
	b.WriteString("\n\n")

	path, err := config.ConfigPath()
	if err == nil {
		verb := "Edit"
		if !config.Exists() {
			verb = "Create"
		}
		hint := styleSubtitle.Render(fmt.Sprintf("%s %s or .env to change these", verb, path))
		b.WriteString(a.center(hint))
		b.WriteString("\n\n")
	}

	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(a.center(instructions))

	return a.centerVertically(b.String())
}
