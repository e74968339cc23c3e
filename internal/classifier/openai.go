package classifier

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/civicpulse/civicpulse/internal/model"
	"github.com/civicpulse/civicpulse/internal/taxonomy"
)

const (
	defaultModel   = openai.GPT4oMini
	defaultTimeout = 30 * time.Second

	// degradedConfidence is reported when the model names a category the
	// taxonomy does not have and only the description survives.
	degradedConfidence = 0.5
)

// Config holds settings for the OpenAI-backed classifier.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClassifier implements Classifier using a vision-capable chat model.
type OpenAIClassifier struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAI creates a classifier from the Config.
func NewOpenAI(cfg Config) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenAIClassifier{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   modelName,
		timeout: timeout,
	}, nil
}

// Provider identifies the backing model family.
func (c *OpenAIClassifier) Provider() string {
	return "openai"
}

// Classify sends the image with the taxonomy prompt and reconciles the JSON
// answer against the taxonomy.
func (c *OpenAIClassifier) Classify(ctx context.Context, image []byte, contentType string) (*model.ClassificationSuggestion, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrClassification)
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(image))

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: 500,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: taxonomy.Prompt()},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailAuto,
						},
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClassification, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrClassification)
	}
	return parseSuggestion(resp.Choices[0].Message.Content)
}

// codeFence matches a JSON object wrapped in markdown fences, which some
// models emit despite being told not to.
var codeFence = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")

// parseSuggestion parses the model's JSON answer and applies the validation
// policy: unknown main category demotes the suggestion, unknown sub category
// falls back to the first sub of the main.
func parseSuggestion(raw string) (*model.ClassificationSuggestion, error) {
	text := strings.TrimSpace(raw)
	if m := codeFence.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	var answer struct {
		MainCategory string  `json:"mainCategory"`
		SubCategory  string  `json:"subCategory"`
		Description  string  `json:"description"`
		Confidence   float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", ErrClassification, err)
	}
	description := answer.Description
	if description == "" {
		description = "Civic issue detected"
	}
	cat, err := taxonomy.Get(answer.MainCategory)
	if err != nil {
		// The model saw something off-taxonomy; keep the description but
		// return no category rather than failing the request.
		return &model.ClassificationSuggestion{
			Description: description,
			Confidence:  degradedConfidence,
		}, nil
	}
	subID := answer.SubCategory
	if _, err := taxonomy.Resolve(cat.ID, subID); err != nil {
		if len(cat.SubCategories) == 0 {
			return nil, fmt.Errorf("%w: category %s has no sub-categories", ErrClassification, cat.ID)
		}
		subID = cat.SubCategories[0].ID
	}
	confidence := answer.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 0.8
	}
	mainID := cat.ID
	return &model.ClassificationSuggestion{
		MainCategory: &mainID,
		SubCategory:  &subID,
		Description:  description,
		Confidence:   confidence,
	}, nil
}
