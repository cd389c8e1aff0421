package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPZeroShotClient calls a HuggingFace-inference-style zero-shot
// classification endpoint.
type HTTPZeroShotClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// NewHTTPZeroShotClient creates a zero-shot client for the given
// endpoint. The timeout bounds the whole request; a slow classifier
// surfaces as a classification error rather than hanging the request.
func NewHTTPZeroShotClient(endpoint, apiKey string, timeout time.Duration) *HTTPZeroShotClient {
	return &HTTPZeroShotClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Classify posts the text with the candidate label set and returns the
// ranked labels, best first. Non-2xx responses are errors; a 2xx
// response with no labels returns an empty slice and nil error.
func (c *HTTPZeroShotClient) Classify(ctx context.Context, text string, candidateLabels []string) ([]string, error) {
	payload, err := json.Marshal(zeroShotRequest{
		Inputs:     text,
		Parameters: zeroShotParameters{CandidateLabels: candidateLabels},
	})
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, fmt.Errorf("zero-shot api error %d: %s", response.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed zeroShotResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("zero-shot response malformed: %w", err)
	}

	return parsed.Labels, nil
}
