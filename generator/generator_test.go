package generator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		count    int
		expected []string
	}{
		{
			name:     "odrážky a číslování",
			input:    []string{"- Zelvago", "• Kavexo", "3. Brixo", "* Lumixa"},
			count:    10,
			expected: []string{"Zelvago", "Kavexo", "Brixo", "Lumixa"},
		},
		{
			name:     "prázdné řádky a prázdná jádra",
			input:    []string{"", "   ", "...", "Zelvago"},
			count:    10,
			expected: []string{"Zelvago"},
		},
		{
			name:     "generická slova se vyřazují",
			input:    []string{"Zelvago Group", "Praha Kavexo", "Brixo"},
			count:    10,
			expected: []string{"Brixo"},
		},
		{
			name:     "jádro mimo rozsah délky",
			input:    []string{"Abc", "Zelvago", "Nesmyslnedlouhynazevfirmy"},
			count:    10,
			expected: []string{"Zelvago"},
		},
		{
			name:     "deduplicita podle jádra",
			input:    []string{"Zelvago", "zelvágo", "Zelvago s.r.o.", "Brixo"},
			count:    10,
			expected: []string{"Zelvago", "Brixo"},
		},
		{
			name:     "omezení počtu",
			input:    []string{"Zelvago", "Brixo", "Kavexo"},
			count:    2,
			expected: []string{"Zelvago", "Brixo"},
		},
		{
			name:     "nulový počet znamená bez omezení",
			input:    []string{"Zelvago", "Brixo", "Kavexo"},
			count:    0,
			expected: []string{"Zelvago", "Brixo", "Kavexo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input, tt.count))
		})
	}
}

func TestSanitizeTruncatesLongNames(t *testing.T) {
	long := "Zelvago " + strings.Repeat("x", 100)
	out := Sanitize([]string{long}, 1)
	// Jádro zkráceného názvu je příliš dlouhé, kandidát se vyřadí.
	assert.Empty(t, out)
}

// fakeChatClient podvržený klient chat-completions.
type fakeChatClient struct {
	content string
	err     error
	lastReq openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator("", "", nil)
	assert.Error(t, err)

	gen, err := NewOpenAIGenerator("sk-test", "", nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, gen.model)
}

func TestOpenAIGeneratorParsesLines(t *testing.T) {
	fake := &fakeChatClient{content: "Zelvago\n\n- Brixo\nKavexo\n"}
	gen := &OpenAIGenerator{client: fake, model: DefaultModel, logger: discardLogger()}

	names, err := gen.Generate(context.Background(), Request{
		Keywords: "kavárna", Count: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Zelvago", "- Brixo", "Kavexo"}, names)

	// Prompt nese klíčová slova i počet.
	prompt := fake.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "kavárna")
	assert.Contains(t, prompt, "3")
}

func TestOpenAIGeneratorPropagatesError(t *testing.T) {
	fake := &fakeChatClient{err: errors.New("rate limited")}
	gen := &OpenAIGenerator{client: fake, model: DefaultModel, logger: discardLogger()}

	_, err := gen.Generate(context.Background(), Request{Keywords: "kavárna", Count: 3})
	assert.Error(t, err)
}

func TestOpenAIGeneratorEmptyChoices(t *testing.T) {
	gen := &OpenAIGenerator{client: &emptyChatClient{}, model: DefaultModel, logger: discardLogger()}
	_, err := gen.Generate(context.Background(), Request{Keywords: "kavárna", Count: 3})
	assert.Error(t, err)
}

type emptyChatClient struct{}

func (emptyChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return openai.ChatCompletionResponse{}, nil
}
