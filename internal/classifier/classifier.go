// Package classifier assigns a spending category to a candidate transaction
// by asking a Gemini model and validating the answer against the closed
// category set.
package classifier

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dmiranda/spendclass/internal/category"
	"github.com/dmiranda/spendclass/internal/transaction"
)

const systemInstruction = "You are a helpful assistant that classifies transactions."

type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// textGenerator produces one completion for a prompt. It exists so tests
// can substitute a deterministic fake for the Gemini client.
type textGenerator interface {
	generate(ctx context.Context, prompt string) (string, error)
}

type Classifier struct {
	gen textGenerator
}

// New builds a Classifier backed by the Gemini API. The client is created
// once here and reused for every call; a missing or rejected API key fails
// the constructor rather than the first request.
func New(ctx context.Context, cfg Config) (*Classifier, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &Classifier{gen: &geminiGenerator{
		client: client,
		cfg:    cfg,
	}}, nil
}

// Classify makes one blocking model call per invocation. No retry, no
// caching: upstream failures surface as ErrClassifierUnavailable and an
// answer outside the category set as ErrCannotClassify. Repeated calls with
// identical input may diverge because sampling is not fully deterministic.
func (c *Classifier) Classify(ctx context.Context, params transaction.CreateParams) (category.Category, error) {
	answer, err := c.gen.generate(ctx, buildPrompt(params))
	if err != nil {
		return "", fmt.Errorf("%w: %s", transaction.ErrClassifierUnavailable, err)
	}

	cat, err := category.ParseAnswer(answer)
	if err != nil {
		return "", fmt.Errorf("%w: %s", transaction.ErrCannotClassify, err)
	}

	return cat, nil
}

// buildPrompt enumerates the closed category set and the transaction's
// descriptive attributes. The amount is interpolated raw, without numeric
// formatting.
func buildPrompt(params transaction.CreateParams) string {
	labels := make([]string, 0, len(category.All()))
	for _, c := range category.All() {
		labels = append(labels, c.String())
	}

	var b strings.Builder

	b.WriteString("Classify the following transaction into one of the categories:\n")
	b.WriteString(strings.Join(labels, ", "))
	b.WriteString(".\nTransaction details:\n")
	fmt.Fprintf(&b, "    counterpart name = %s,\n", params.CounterpartName)
	fmt.Fprintf(&b, "    amount = %v,\n", params.Amount)
	fmt.Fprintf(&b, "    transaction type = %s\n", params.TransactionType)
	b.WriteString("Answer with the category name only.")

	return b.String()
}

type geminiGenerator struct {
	client *genai.Client
	cfg    Config
}

func (g *geminiGenerator) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.cfg.Temperature),
		MaxOutputTokens:   g.cfg.MaxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return resp.Text(), nil
}
