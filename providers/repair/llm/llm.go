package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/leofalp/selfheal/internal/utils"
	"github.com/leofalp/selfheal/providers/repair"
)

const (
	envAPIKey   = "API_KEY"
	envEndpoint = "OPENAI_ENDPOINT"

	defaultModel = "gpt-4o-mini"

	chatCompletionsPath = "/chat/completions"
)

const systemPrompt = "You fix malformed JSON. Given broken or messy text and a JSON schema, " +
	"respond with ONLY the corrected JSON object matching the schema. " +
	"No explanations, no markdown fences, no surrounding text."

// Config holds the settings for the LLM-backed repairer. APIKey and Endpoint
// are mandatory; Model defaults to gpt-4o-mini and Temperature defaults to 0
// so repairs are as deterministic as the model allows.
type Config struct {
	APIKey      string
	Endpoint    string
	Model       string
	Temperature float64
}

// ConfigFromEnv reads the service credential and endpoint from the API_KEY
// and OPENAI_ENDPOINT environment variables. It returns an error when either
// is missing, so misconfiguration surfaces at startup rather than inside
// extraction calls.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		APIKey:   os.Getenv(envAPIKey),
		Endpoint: os.Getenv(envEndpoint),
	}
	if cfg.APIKey == "" {
		return Config{}, fmt.Errorf("llm: environment variable %s is not set", envAPIKey)
	}
	if cfg.Endpoint == "" {
		return Config{}, fmt.Errorf("llm: environment variable %s is not set", envEndpoint)
	}
	return cfg, nil
}

// Client is a repair capability backed by an OpenAI-compatible chat
// completions endpoint. It implements [repair.Repairer] with exactly one
// blocking request per Repair call and no internal retry; wrap the context
// with a timeout to bound latency.
type Client struct {
	cfg    Config
	client *http.Client
}

// New creates a Client from cfg, applying defaults for unset optional fields.
func New(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. to configure transport-level
// timeouts or to inject a test transport.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.client = httpClient
	return c
}

// Repair asks the model to rewrite raw into JSON matching schemaDescription
// and returns the candidate text. Transport failures, non-2xx statuses and
// empty completions are reported as *repair.UnavailableError.
func (c *Client) Repair(ctx context.Context, raw string, schemaDescription string) (string, error) {
	request := chatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: &c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildRepairPrompt(raw, schemaDescription)},
		},
	}

	url := strings.TrimSuffix(c.cfg.Endpoint, "/") + chatCompletionsPath
	response, err := utils.PostJSON[chatCompletionResponse](ctx, c.client, url, c.cfg.APIKey, request)
	if err != nil {
		return "", &repair.UnavailableError{Err: err}
	}

	if len(response.Choices) == 0 {
		return "", &repair.UnavailableError{Err: errors.New("no choices in completion response")}
	}

	return stripFences(response.Choices[0].Message.Content), nil
}

// buildRepairPrompt assembles the user message: the schema the output must
// satisfy, then the broken text to fix.
func buildRepairPrompt(raw string, schemaDescription string) string {
	var b strings.Builder
	b.WriteString("Target JSON schema (field names, types and constraints):\n")
	b.WriteString(schemaDescription)
	b.WriteString("\n\nText to fix:\n")
	b.WriteString(raw)
	return b.String()
}

// stripFences removes a surrounding markdown code fence from a model reply.
// Models frequently wrap JSON in ```json ... ``` despite instructions, with
// or without a newline after the opening fence.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```")
	// Drop an optional language label such as "json" directly after the
	// opening backticks.
	i := 0
	for i < len(content) && isASCIILetter(content[i]) {
		i++
	}
	content = content[i:]
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

func isASCIILetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
