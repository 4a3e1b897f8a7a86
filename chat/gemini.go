package chat

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

const (
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.7

	SystemInstruction = "You are a friendly and helpful chatbot named NP Chatbot. " +
		"Your responses should be informative, well-formatted, and conversational. " +
		"Avoid using markdown formatting like asterisks for bolding."
)

// GeminiStreamer streams replies from the Gemini API
type GeminiStreamer struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiStreamer(ctx context.Context, apiKey, model string, temperature float64) (*GeminiStreamer, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiStreamer{client: client, model: model, temperature: float32(temperature)}, nil
}

func (g *GeminiStreamer) Stream(ctx context.Context, history []Message, out chan<- string) error {
	contents := FormatHistory(history)
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr(g.temperature),
	}
	log.Printf("gemini: streaming %d messages to %s", len(contents), g.model)

	for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, contents, cfg) {
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		text := resp.Text()
		if text == "" {
			continue
		}
		select {
		case out <- text:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// FormatHistory maps the transcript onto API contents, dropping the welcome
// message and empty replies
func FormatHistory(history []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		if m.Text == WelcomeText || m.Text == "" {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if m.Sender == Model {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}
	return contents
}
