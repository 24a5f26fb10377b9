package abstractor

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are an AI assistant specializing in real estate title abstracting for New York State. You transcribe recorded instruments faithfully and do not invent facts. Return strict JSON only."

// DefaultLLMModel is used when TITLE_LLM_MODEL is not set.
const DefaultLLMModel = string(anthropic.ModelClaudeSonnet4_20250514)

// Extractor runs one extraction prompt against an uploaded PDF and returns
// the model's raw text response.
type Extractor interface {
	ExtractJSON(ctx context.Context, pdf []byte, prompt string) (string, error)
	ModelName() string
}

type AnthropicMessager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type AnthropicExtractor struct {
	messages AnthropicMessager
	model    string
}

type AnthropicClientCreator func(apiKey string) AnthropicMessager

func defaultAnthropicCreator(apiKey string) AnthropicMessager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newAnthropicClient AnthropicClientCreator = defaultAnthropicCreator

func NewAnthropicExtractorFromEnv() (*AnthropicExtractor, error) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not configured")
	}
	model := strings.TrimSpace(os.Getenv("TITLE_LLM_MODEL"))
	if model == "" {
		model = DefaultLLMModel
	}
	return &AnthropicExtractor{messages: newAnthropicClient(apiKey), model: model}, nil
}

func (a *AnthropicExtractor) ModelName() string { return a.model }

func (a *AnthropicExtractor) ExtractJSON(ctx context.Context, pdf []byte, prompt string) (string, error) {
	resp, err := a.messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 8192,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{
					Data: base64.StdEncoding.EncodeToString(pdf),
				}),
				anthropic.NewTextBlock(prompt),
			),
		},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return sb.String(), nil
}
