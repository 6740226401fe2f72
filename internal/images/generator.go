// Package images generates blog banner images through the Hugging Face
// inference API and persists them to the image store.
package images

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alitypes/scribe/internal/storage"
)

const hfModelURL = "https://api-inference.huggingface.co/models/stabilityai/stable-diffusion-xl-base-1.0"

// Generator produces 16:9 banner images. Image generation is optional
// infrastructure: with no API key every call returns an empty URL, and
// failures are logged rather than propagated.
type Generator struct {
	httpClient *http.Client
	apiKey     string
	store      storage.ImageStore
	now        func() time.Time
}

func NewGenerator(apiKey string, store storage.ImageStore) *Generator {
	return &Generator{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		apiKey:     apiKey,
		store:      store,
		now:        time.Now,
	}
}

// Generate creates and stores a banner image for the topic, returning its
// public URL. Returns "" when unconfigured or on any failure.
func (g *Generator) Generate(ctx context.Context, topic string, keywords []string) string {
	if g.apiKey == "" {
		slog.Warn("No image generation API key configured, skipping image generation")
		return ""
	}

	prompt := BuildImagePrompt(topic, keywords)
	slog.Info("Generating image", "topic", topic, "prompt", prompt)

	data, err := g.requestImage(ctx, prompt)
	if err != nil {
		slog.Warn("Image generation failed", "topic", topic, "error", err)
		return ""
	}

	filename := fmt.Sprintf("%s-%d.jpg", topicSlug(topic), g.now().UnixMilli())
	url, err := g.store.Put(data, filename)
	if err != nil {
		slog.Warn("Failed to store generated image", "filename", filename, "error", err)
		return ""
	}

	slog.Info("Image generated and stored", "url", url)
	return url
}

func (g *Generator) requestImage(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(map[string]any{
		"inputs": prompt,
		"parameters": map[string]any{
			"num_inference_steps": 20,
			"guidance_scale":      7.5,
			"width":               1024,
			"height":              576,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", hfModelURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image API returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image API returned empty body")
	}
	return data, nil
}

// topicSlug mirrors blog.GenerateSlug for image filenames: lowercase,
// special characters stripped, spaces to hyphens.
func topicSlug(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}
