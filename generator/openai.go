package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultModel výchozí model pro generování názvů.
const DefaultModel = "gpt-4o-mini"

// chatClient podmnožina klienta OpenAI potřebná pro generování, kvůli
// podvržení v testech.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIGenerator generátor názvů nad chat-completions API OpenAI.
type OpenAIGenerator struct {
	client chatClient
	model  string
	logger *slog.Logger
}

// NewOpenAIGenerator vytvoří generátor názvů. Klíč API je povinný.
func NewOpenAIGenerator(apiKey, model string, logger *slog.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("chybí OPENAI_API_KEY")
	}
	if model == "" {
		model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OpenAIGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

// Generate vyžádá od modelu kandidátní názvy, jeden na řádek, a vrátí
// syrové řádky. Sanitizaci (délky, generická slova, deduplikaci) provádí
// volající přes Sanitize.
func (g *OpenAIGenerator) Generate(ctx context.Context, req Request) ([]string, error) {
	style := req.Style
	if style == "" {
		style = "moderní, stručné, snadno vyslovitelné"
	}

	prompt := fmt.Sprintf(
		"Vymysli %d originálních názvů firmy, které NEJSOU běžnými českými slovy a nejsou generické.\n"+
			"Klíčová slova/obor: %s\n"+
			"Styl: %s\n"+
			"Podmínky: 1 slovo, bez diakritiky, bez právních přípon, bez slov jako group/consulting/solutions.\n"+
			"Piš jen názvy, každý na nový řádek.",
		req.Count, req.Keywords, style,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.9,
	})
	if err != nil {
		g.logger.Error("OpenAI API call failed", "model", g.model, "error", err)
		return nil, fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	var names []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}

	g.logger.Debug("generator returned candidates",
		"model", g.model, "requested", req.Count, "returned", len(names))
	return names, nil
}
