package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Extractor is the boundary to the external extraction model. One call per
// statement file; the result is the ordered list of raw transaction triples
// [date, description, amount].
type Extractor interface {
	// ExtractText submits a full statement read as a UTF-8 text blob.
	ExtractText(ctx context.Context, statement string) ([][]string, error)

	// ExtractImage submits the raw bytes of a statement image as an inline
	// payload with the given MIME type.
	ExtractImage(ctx context.Context, data []byte, mimeType string) ([][]string, error)
}

// GeminiExtractor implements Extractor against the Gemini API.
type GeminiExtractor struct {
	model  string
	apiKey string
	now    func() time.Time
}

// NewGeminiExtractor creates an extractor for the given model name. The API
// key may be empty, in which case the client falls back to the GEMINI_API_KEY
// environment variable.
func NewGeminiExtractor(model, apiKey string) *GeminiExtractor {
	return &GeminiExtractor{
		model:  model,
		apiKey: apiKey,
		now:    time.Now,
	}
}

// ExtractText implements Extractor.
func (g *GeminiExtractor) ExtractText(ctx context.Context, statement string) ([][]string, error) {
	return g.generate(ctx, &genai.Part{Text: statement})
}

// ExtractImage implements Extractor.
func (g *GeminiExtractor) ExtractImage(ctx context.Context, data []byte, mimeType string) ([][]string, error) {
	return g.generate(ctx, &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	})
}

// generate sends the instruction prompt plus the statement part to the model
// and decodes its JSON response into raw transaction triples.
func (g *GeminiExtractor) generate(ctx context.Context, statement *genai.Part) ([][]string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      g.apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildExtractionPrompt(g.now().Year())},
				statement,
			},
		},
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}

	resp, err := client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	rawText := resp.Text()
	if rawText == "" {
		return nil, fmt.Errorf("empty response from model")
	}

	return decodeModelResponse(rawText)
}

// decodeModelResponse parses the model's JSON payload into raw transaction
// triples. The payload must be {"transactions": [[...], ...]}.
func decodeModelResponse(raw string) ([][]string, error) {
	clean := cleanModelJSON(raw)

	var payload struct {
		Transactions [][]string `json:"transactions"`
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("unmarshal model response: %w", err)
	}
	if payload.Transactions == nil {
		return nil, fmt.Errorf("model response missing 'transactions' key")
	}

	return payload.Transactions, nil
}

// cleanModelJSON strips Markdown fences and surrounding junk if the model
// ignored the strict-JSON instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON object, keep only
	// from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
