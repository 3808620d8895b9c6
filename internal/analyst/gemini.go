// Package analyst turns a scan report into a short trade narrative
// using the Gemini API. The narrative is enrichment for the report
// email; every failure degrades to a placeholder note upstream.
package analyst

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"StockScout/internal/model"
)

const defaultModel = "gemini-2.0-flash"

const taskPrompt = `TASK:
1. Select the SINGLE BEST stock to trade for today.
2. Explain WHY briefly (technical + news sentiment).
3. Provide a clear ACTION plan (buy price, stop loss, target).
4. Mention 1-2 other honorable mentions.

Keep the output concise, professional, and formatted in HTML (use <h3>, <ul>, <b>).
Do not include standard HTML boilerplate (<html>, <body>), just the inner content.`

// GeminiAnalyst generates narratives with a Gemini chat model.
type GeminiAnalyst struct {
	client *genai.Client
	model  string
}

// NewGeminiAnalyst creates the analyst. The model name may be empty to
// use the default.
func NewGeminiAnalyst(ctx context.Context, apiKey, model string) (*GeminiAnalyst, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}
	return &GeminiAnalyst{client: client, model: model}, nil
}

// Analyze produces an HTML narrative for the report and its news map.
func (a *GeminiAnalyst) Analyze(ctx context.Context, report *model.ScanReport, newsMap map[string][]model.StockNews) (string, error) {
	payload := map[string]interface{}{
		"falling": report.Drops,
		"rsi":     report.Rsi,
		"crosses": report.Crosses,
		"news":    newsMap,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	prompt := "You are an expert stock trader. Analyze the following daily screening results for Indian stocks (NSE):\n\nDATA:\n" +
		string(data) + "\n\n" + taskPrompt

	contents := []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}

	resp, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var out strings.Builder
	if resp != nil {
		for _, cand := range resp.Candidates {
			if cand.Content == nil {
				continue
			}
			for _, part := range cand.Content.Parts {
				if part.Text != "" {
					out.WriteString(part.Text)
				}
			}
			if out.Len() > 0 {
				break
			}
		}
	}
	if out.Len() == 0 {
		return "", errors.New("gemini returned no text")
	}
	return out.String(), nil
}
