package image

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Generated images must stay usable on a political newsletter: no
// identifiable figures, no partisan symbols, nothing controversial.
const (
	baseStyle = "Professional, clean, modern digital illustration. "

	safetyConstraints = `
Avoid: Specific political figures, partisan symbols, controversial imagery.
Include: Abstract concepts, Virginia landmarks, community themes, patriotic colors.
Style: Clean, professional, inclusive, appropriate for government/political newsletter.`
)

// Generator produces a single featured image per newsletter via the
// image-generation API and fetches the result to local storage.
type Generator struct {
	opts     []option.RequestOption
	download *resty.Client
}

func NewGenerator(apiKey string, opts ...option.RequestOption) *Generator {
	all := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Generator{
		opts:     all,
		download: resty.New().SetTimeout(60 * time.Second),
	}
}

// Generate requests one 1792x1024 standard-quality image and returns its
// URL. Any failure (network, quota, policy rejection) is an error; the
// caller decides whether to tolerate it.
func (g *Generator) Generate(ctx context.Context, description, style string) (string, error) {
	if style == "" {
		style = "professional"
	}
	client := openai.NewClient(g.opts...)

	resp, err := client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:          openai.ImageModelDallE3,
		Prompt:         refinePrompt(description, style),
		N:              openai.Int(1),
		Size:           openai.ImageGenerateParamsSize1792x1024,
		Quality:        openai.ImageGenerateParamsQualityStandard,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", fmt.Errorf("image generation failed: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no image")
	}
	return resp.Data[0].URL, nil
}

// Download fetches the generated image to savePath, creating any missing
// directories, and returns the stored path.
func (g *Generator) Download(ctx context.Context, imageURL, savePath string) (string, error) {
	resp, err := g.download.R().SetContext(ctx).Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("image download failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("image download failed: status %d", resp.StatusCode())
	}

	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", fmt.Errorf("creating image directory: %w", err)
	}
	if err := os.WriteFile(savePath, resp.Body(), 0644); err != nil {
		return "", fmt.Errorf("saving image: %w", err)
	}
	return savePath, nil
}

// refinePrompt appends the fixed safety/style suffix. Only the
// "professional" style exists today; the parameter keeps the contract stable.
func refinePrompt(description, _ string) string {
	return fmt.Sprintf("%s%s. %s", baseStyle, description, safetyConstraints)
}
