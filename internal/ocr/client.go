// Package ocr extracts text from label images via the OCR.space API.
package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Client calls the OCR.space parse endpoint. The pipeline makes no assumption
// about the quality of the returned text beyond it being a string.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates an OCR.space client.
func NewClient(apiKey, endpoint string) *Client {
	return &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type parseResponse struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
	IsErroredOnProcessing bool `json:"IsErroredOnProcessing"`
	// ErrorMessage is a string or a list of strings depending on the failure
	ErrorMessage json.RawMessage `json:"ErrorMessage"`
}

// ExtractText uploads image bytes and returns the recognized text. An empty
// result is not an error.
func (c *Client) ExtractText(ctx context.Context, image []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", "image.png")
	if err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	_ = w.WriteField("language", "eng")
	_ = w.WriteField("isOverlayRequired", "false")
	_ = w.WriteField("OCREngine", "2")
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("OCR request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read OCR response: %w", err)
	}

	var parsed parseResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("OCR.space did not return valid JSON: %w", err)
	}
	if parsed.IsErroredOnProcessing {
		return "", fmt.Errorf("OCR.space processing error: %s", string(parsed.ErrorMessage))
	}
	if len(parsed.ParsedResults) == 0 {
		return "", nil
	}
	return parsed.ParsedResults[0].ParsedText, nil
}
