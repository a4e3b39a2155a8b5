package config

type ProviderInfo struct {
	ID             string
	Name           string
	Description    string
	NeedsAPIKey    bool
	DefaultBaseURL string
	Models         []string
	DefaultModel   string
}

var Providers = []ProviderInfo{
	{
		ID:           "azure",
		Name:         "Azure OpenAI",
		Description:  "Deployment behind an Azure OpenAI v1 endpoint",
		NeedsAPIKey:  true,
		Models:       []string{"gpt-4.1", "gpt-4o-mini"},
		DefaultModel: "gpt-4.1",
	},
	{
		ID:             "openai",
		Name:           "OpenAI",
		Description:    "GPT-4.1, most capable",
		NeedsAPIKey:    true,
		DefaultBaseURL: "https://api.openai.com/v1",
		Models:         []string{"gpt-4.1", "gpt-4o", "gpt-4o-mini"},
		DefaultModel:   "gpt-4.1",
	},
	{
		ID:             "groq",
		Name:           "Groq",
		Description:    "Very fast, cheap",
		NeedsAPIKey:    true,
		DefaultBaseURL: "https://api.groq.com/openai/v1",
		Models:         []string{"llama-3.1-70b-versatile", "llama-3.1-8b-instant"},
		DefaultModel:   "llama-3.1-70b-versatile",
	},
	{
		ID:             "openrouter",
		Name:           "OpenRouter",
		Description:    "Access all models",
		NeedsAPIKey:    true,
		DefaultBaseURL: "https://openrouter.ai/api/v1",
		Models:         []string{"openai/gpt-4.1", "anthropic/claude-3.5-sonnet"},
		DefaultModel:   "openai/gpt-4.1",
	},
	{
		ID:             "anthropic",
		Name:           "Anthropic",
		Description:    "Claude, great writing",
		NeedsAPIKey:    true,
		DefaultBaseURL: "https://api.anthropic.com",
		Models:         []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
		DefaultModel:   "claude-3-5-sonnet-20241022",
	},
	{
		ID:             "ollama",
		Name:           "Ollama",
		Description:    "Local, free, private",
		DefaultBaseURL: "http://localhost:11434",
		Models:         []string{"llama3.1:8b", "qwen2.5:7b"},
		DefaultModel:   "llama3.1:8b",
	},
	{
		ID:          "custom",
		Name:        "Custom",
		Description: "Any OpenAI-compatible endpoint",
	},
}

func GetProvider(id string) *ProviderInfo {
	for _, p := range Providers {
		if p.ID == id {
			return &p
		}
	}
	return nil
}
