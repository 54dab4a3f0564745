package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"recipe-chef/api/internal/util"
)

var ErrNoAPIKey = errors.New("gemini: API key is empty")

type Engine struct {
	APIKey      string
	TextModel   string
	ImageModel  string
	BaseURL     string
	AspectRatio string
	Temperature float32

	// ClientOptions are appended to the SDK client options (endpoint overrides, custom transports).
	ClientOptions []option.ClientOption

	httpc *http.Client
}

func New(apiKey, textModel, imageModel string) *Engine {
	return &Engine{
		APIKey:      strings.TrimSpace(apiKey),
		TextModel:   strings.TrimSpace(textModel),
		ImageModel:  strings.TrimSpace(imageModel),
		BaseURL:     "https://generativelanguage.googleapis.com",
		AspectRatio: "1:1",
		Temperature: 0.7,
		httpc:       &http.Client{Timeout: 120 * time.Second},
	}
}

// Recipe asks the text model for a markdown recipe built from the ingredients.
func (e *Engine) Recipe(ctx context.Context, ingredients string) (string, error) {
	if e.APIKey == "" {
		return "", ErrNoAPIKey
	}
	opts := append([]option.ClientOption{option.WithAPIKey(e.APIKey)}, e.ClientOptions...)
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("gemini recipe: client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.TextModel)
	m.SetTemperature(e.Temperature)

	resp, err := m.GenerateContent(ctx, genai.Text(RecipePrompt(ingredients)))
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		// a blocked answer carries no text
		log.WithField("model", e.TextModel).WithError(err).Warn("gemini recipe: blocked")
		return EmptyRecipeText, nil
	}
	if err != nil {
		return "", fmt.Errorf("gemini recipe: %w", err)
	}
	txt := joinText(resp)
	if strings.TrimSpace(txt) == "" {
		log.WithField("model", e.TextModel).Warn("gemini recipe: empty text")
		return EmptyRecipeText, nil
	}
	return txt, nil
}

type imageResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text       string `json:"text,omitempty"`
				InlineData *struct {
					MimeType string `json:"mimeType"`
					Data     string `json:"data"`
				} `json:"inlineData,omitempty"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// DishImage renders a photo of the dish and returns it as a data URL.
// An answer without inline image bytes yields "" and no error.
func (e *Engine) DishImage(ctx context.Context, dishName string) (string, error) {
	if e.APIKey == "" {
		return "", ErrNoAPIKey
	}

	body := map[string]any{
		"contents": []any{
			map[string]any{
				"parts": []any{
					map[string]any{"text": DishImagePrompt(dishName)},
				},
			},
		},
		"generationConfig": map[string]any{
			"responseModalities": []string{"TEXT", "IMAGE"},
			"imageConfig": map[string]any{
				"aspectRatio": e.AspectRatio,
			},
		},
	}
	payload, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(e.BaseURL, "/"), e.ImageModel)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.APIKey)

	resp, err := e.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini image %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out imageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini image: bad JSON: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", nil
	}
	for _, p := range out.Candidates[0].Content.Parts {
		if p.InlineData == nil || p.InlineData.Data == "" {
			continue
		}
		mime := p.InlineData.MimeType
		if mime == "" {
			mime = "image/png"
		}
		return util.MakeDataURL(mime, p.InlineData.Data), nil
	}
	log.WithField("dish", dishName).Info("gemini image: no inline data in answer")
	return "", nil
}

func (e *Engine) client() *http.Client {
	if e.httpc == nil {
		return http.DefaultClient
	}
	return e.httpc
}

// joinText concatenates the text parts of the first candidate.
func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, p := range c.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
