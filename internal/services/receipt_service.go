package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"expensely/internal/config"
	apperrors "expensely/internal/errors"
	"expensely/internal/logger"
	"expensely/internal/validator"
)

const receiptPrompt = `Extract the following fields from this receipt image and respond with a single JSON object, nothing else:
{"amount": <total as a number>, "date": "<YYYY-MM-DD>", "merchant": "<store name>", "category": "<one of the known categories or empty>", "description": "<short summary>"}`

// receiptService extracts transaction data from receipt images through an
// external vision model. The model is a black box: this service only owns
// the request shape and the category allow-list applied to its answer.
type receiptService struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewReceiptService creates a new ReceiptServicer from the application config.
func NewReceiptService(cfg *config.Config) ReceiptServicer {
	return &receiptService{
		baseURL: cfg.OCRBaseURL,
		apiKey:  cfg.OCRAPIKey,
		model:   cfg.OCRModel,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type visionRequest struct {
	Model     string          `json:"model"`
	Messages  []visionMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type visionMessage struct {
	Role    string          `json:"role"`
	Content []visionContent `json:"content"`
}

type visionContent struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *visionImageURL `json:"image_url,omitempty"`
}

type visionImageURL struct {
	URL string `json:"url"`
}

type visionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ScanReceipt sends the image to the vision API and parses the extracted
// fields. A category outside the allow-list is cleared rather than stored.
func (s *receiptService) ScanReceipt(ctx context.Context, image []byte, mimeType string) (*ReceiptData, error) {
	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	payload := visionRequest{
		Model: s.model,
		Messages: []visionMessage{{
			Role: "user",
			Content: []visionContent{
				{Type: "text", Text: receiptPrompt},
				{Type: "image_url", ImageURL: &visionImageURL{URL: dataURI}},
			},
		}},
		MaxTokens: 300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	res, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed,
			fmt.Errorf("vision API returned status %d: %s", res.StatusCode, resBody))
	}

	var parsed visionResponse
	if err := json.Unmarshal(resBody, &parsed); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, fmt.Errorf("vision API returned no choices"))
	}

	data, err := parseReceiptContent(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// parseReceiptContent decodes the model's JSON answer and sanitizes it.
// Models occasionally wrap the object in markdown fences or invent
// category names; both are handled here rather than trusted downstream.
func parseReceiptContent(content string) (*ReceiptData, error) {
	// Trim everything outside the outermost braces.
	start := bytes.IndexByte([]byte(content), '{')
	end := bytes.LastIndexByte([]byte(content), '}')
	if start < 0 || end <= start {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, fmt.Errorf("no JSON object in model output"))
	}

	var data ReceiptData
	if err := json.Unmarshal([]byte(content[start:end+1]), &data); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrReceiptScanFailed, err)
	}

	if data.Category != "" && !validator.ReceiptCategories[data.Category] {
		logger.Get().Infow("clearing unknown receipt category", "category", data.Category)
		data.Category = ""
	}
	if data.Date != "" {
		if _, err := time.Parse("2006-01-02", data.Date); err != nil {
			data.Date = ""
		}
	}
	return &data, nil
}
