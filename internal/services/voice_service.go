package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/expiryguard/backend/internal/domain"
	"github.com/expiryguard/backend/internal/expiry"
	"github.com/expiryguard/backend/internal/logger"
)

const voicePrompt = "Extract the product name and expiry date from this sentence. " +
	"Respond as JSON with keys 'product_name' and 'expiry_date'. " +
	"The expiry date should be in DD/MM/YYYY format. Sentence: '%s'"

// VoiceService turns spoken transcripts into a product name and expiry date.
// The language model is the primary path; when no credential is configured or
// the call fails, the regex fallback takes over.
type VoiceService struct {
	provider     string
	geminiModel  string
	openaiModel  string
	geminiClient *genai.Client
	openaiClient *openai.Client
	now          func() time.Time
}

// VoiceConfig selects and configures the language-model provider. An empty
// provider or missing key disables the LLM path entirely; that is an expected
// condition, not an error.
type VoiceConfig struct {
	Provider     string // "gemini" or "openai"
	GeminiAPIKey string
	OpenAIAPIKey string
	GeminiModel  string
	OpenAIModel  string
}

func NewVoiceService(ctx context.Context, cfg VoiceConfig) (*VoiceService, error) {
	s := &VoiceService{
		provider:    cfg.Provider,
		geminiModel: cfg.GeminiModel,
		openaiModel: cfg.OpenAIModel,
		now:         time.Now,
	}

	switch cfg.Provider {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			s.provider = ""
			break
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			s.provider = ""
			break
		}
		s.openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	default:
		s.provider = ""
	}

	if s.provider == "" {
		logger.Info("No LLM credential configured, voice parsing uses regex fallback only")
	}
	return s, nil
}

// ExtractFromTranscript parses a transcript, preferring the configured
// language model and falling back to regex extraction on any failure.
func (s *VoiceService) ExtractFromTranscript(ctx context.Context, transcript string) (*domain.VoiceExtraction, error) {
	if s.provider != "" {
		extracted, err := s.extractWithLLM(ctx, transcript)
		if err == nil {
			return extracted, nil
		}
		logger.Error("LLM voice extraction failed, falling back to regex", "provider", s.provider, "error", err)
	}
	return s.extractWithRegex(transcript)
}

func (s *VoiceService) extractWithLLM(ctx context.Context, transcript string) (*domain.VoiceExtraction, error) {
	var content string
	var err error
	switch s.provider {
	case "gemini":
		content, err = s.generateWithGemini(ctx, transcript)
	case "openai":
		content, err = s.generateWithOpenAI(ctx, transcript)
	default:
		return nil, fmt.Errorf("no LLM provider configured")
	}
	if err != nil {
		return nil, err
	}

	var parsed struct {
		ProductName string `json:"product_name"`
		ExpiryDate  string `json:"expiry_date"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(content)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse LLM output as JSON: %w", err)
	}

	result := &domain.VoiceExtraction{ProductName: parsed.ProductName}
	if parsed.ExpiryDate != "" {
		// the model is asked for DD/MM/YYYY but does not always comply
		if d, ok := expiry.ResolveDatePhrase(parsed.ExpiryDate, s.now()); ok {
			result.ExpiryDate = d.String()
		}
	}
	return result, nil
}

func (s *VoiceService) generateWithGemini(ctx context.Context, transcript string) (string, error) {
	model := s.geminiClient.GenerativeModel(s.geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(voicePrompt, transcript)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty Gemini response")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected Gemini response part")
	}
	return string(text), nil
}

func (s *VoiceService) generateWithOpenAI(ctx context.Context, transcript string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(voicePrompt, transcript),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty OpenAI response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *VoiceService) extractWithRegex(transcript string) (*domain.VoiceExtraction, error) {
	res, err := expiry.ExtractFromTranscript(transcript, s.now())
	if err != nil {
		return nil, err
	}
	extraction := &domain.VoiceExtraction{ProductName: res.ProductName}
	if !res.Date.IsZero() {
		extraction.ExpiryDate = res.Date.String()
	}
	return extraction, nil
}

// stripJSONFences removes markdown code fences some models wrap around JSON.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
