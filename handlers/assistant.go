package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"cafeteria-analytics/config"
)

const assistantInstruction = "You are an intelligent assistant inside a cafeteria " +
	"analytics dashboard. You can see some metrics from the database. " +
	"When the user asks about sales, menu items, or trends, use ONLY the " +
	"metrics I give you and explain them clearly. When the question is " +
	"general (for example, about the weather or colors), just answer normally."

// askAssistant sends the question plus the metrics summary to Gemini and
// returns the generated text. Any failure is swallowed here: the caller
// always gets a usable answer, at worst a deterministic fallback embedding
// the summary and the error.
func askAssistant(ctx context.Context, cfg *config.Config, question, summary string) string {
	text, err := generateAnswer(ctx, cfg, question, summary)
	if err != nil {
		log.Printf("AI request failed: %v", err)
		return fallbackAnswer(summary, err)
	}
	return text
}

func generateAnswer(ctx context.Context, cfg *config.Config, question, summary string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(cfg.GeminiModel)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(assistantInstruction)},
	}

	prompt := fmt.Sprintf("User question:\n%s\n\nHere are the current metrics you can use:\n%s",
		question, summary)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content received from AI")
	}

	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text += string(txt)
		}
	}
	if text == "" {
		return "", fmt.Errorf("no text content received from AI")
	}
	return strings.TrimSpace(text), nil
}

// fallbackAnswer keeps the computed numbers in front of the user even when
// narrative generation fails.
func fallbackAnswer(summary string, err error) string {
	lines := []string{
		"(There was a problem using the AI model, so this is a simple fallback message.)",
		"",
		summary,
		"",
		fmt.Sprintf("Error from AI service: %v", err),
	}
	return strings.Join(lines, "\n")
}
