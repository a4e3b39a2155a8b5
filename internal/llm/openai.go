package llm

import (
	"context"
	"fmt"
	"time"
)

const openAIBaseURL = "https://api.openai.com/v1"

// OpenAIProvider talks to any OpenAI-compatible chat completions endpoint:
// OpenAI itself, Azure OpenAI's v1 surface, Groq, OpenRouter or a custom
// gateway. The base URL includes the version segment.
type OpenAIProvider struct {
	api   apiClient
	name  string
	model string
}

// NewOpenAIProvider creates an OpenAI-compatible provider reported under name.
func NewOpenAIProvider(name, baseURL, apiKey, model string, timeout time.Duration) *OpenAIProvider {
	if name == "" {
		name = "openai"
	}
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	api := newAPIClient(name, baseURL, timeout)
	if apiKey != "" {
		api.headers["Authorization"] = "Bearer " + apiKey
		if name == "azure" {
			api.headers["api-key"] = apiKey
		}
	}

	return &OpenAIProvider{
		api:   api,
		name:  name,
		model: model,
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	if err := o.api.get(ctx, "/models"); err != nil {
		return fmt.Errorf("cannot connect to %s: %w", o.name, err)
	}
	return nil
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	apiReq := openAIRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}

	var apiResp openAIResponse
	if err := o.api.postJSON(ctx, "/chat/completions", apiReq, &apiResp); err != nil {
		return nil, err
	}

	if len(apiResp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", o.name)
	}

	choice := apiResp.Choices[0]
	if choice.Message.Content == nil {
		return nil, fmt.Errorf("%s returned no message content (finish reason %q)", o.name, choice.FinishReason)
	}

	if apiResp.Model != "" {
		model = apiResp.Model
	}

	return &CompletionResponse{
		Content:      *choice.Message.Content,
		Model:        model,
		FinishReason: choice.FinishReason,
		Usage: Usage{
			PromptTokens:     apiResp.Usage.PromptTokens,
			CompletionTokens: apiResp.Usage.CompletionTokens,
			TotalTokens:      apiResp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(msgs []Message) []openAIMessage {
	result := make([]openAIMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openAIMessage{Role: m.Role, Content: m.Content}
	}
	return result
}
