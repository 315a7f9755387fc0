package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clementus360/mood-tracker/types"
)

// TextClassifier calls a Hugging Face style text-classification endpoint.
// The endpoint answers with [[{"label": ..., "score": ...}, ...]] or a flat list.
type TextClassifier struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewTextClassifier(url, token string, timeout time.Duration) *TextClassifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &TextClassifier{
		url:        url,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (c *TextClassifier) Detect(ctx context.Context, text string) types.Detection {
	label, score, err := c.classify(ctx, text)
	if err != nil {
		return types.Detection{Source: types.SourceText, Outcome: types.OutcomeFailed, Error: err.Error()}
	}
	return types.Detection{
		Label:      label,
		Confidence: score,
		Source:     types.SourceText,
		Outcome:    types.OutcomeOK,
	}
}

func (c *TextClassifier) classify(ctx context.Context, text string) (string, float64, error) {
	if strings.TrimSpace(text) == "" {
		return "", 0, fmt.Errorf("empty text")
	}

	jsonData, err := json.Marshal(map[string]any{"inputs": text})
	if err != nil {
		return "", 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return "", 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("classifier returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	results, err := decodeClassifications(body)
	if err != nil {
		return "", 0, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Score > best.Score {
			best = r
		}
	}
	return strings.ToLower(best.Label), best.Score, nil
}

func decodeClassifications(body []byte) ([]classification, error) {
	var nested [][]classification
	if err := json.Unmarshal(body, &nested); err == nil && len(nested) > 0 && len(nested[0]) > 0 {
		return nested[0], nil
	}

	var flat []classification
	if err := json.Unmarshal(body, &flat); err == nil && len(flat) > 0 {
		return flat, nil
	}
	return nil, fmt.Errorf("unexpected classifier response: %s", truncate(string(body), 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
