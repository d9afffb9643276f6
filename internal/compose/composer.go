package compose

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gcrc/newsletter-agent/internal/ai"
	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/gcrc/newsletter-agent/internal/models"
	"github.com/yuin/goldmark"
)

// ErrUnsupportedMode is returned for a content mode outside
// research / minutes / hybrid.
var ErrUnsupportedMode = errors.New("unsupported content mode")

const degradedExcerptLimit = 200

// Input is the mode-dependent payload handed to the composer. Research
// mode reads Topic/Context/Research, minutes mode reads Minutes, hybrid
// reads both.
type Input struct {
	Topic    string
	Context  string
	Research *models.ResearchFindings
	Minutes  *models.StructuredDocument
}

// Composer builds a mode-specific prompt, runs one model call against the
// fixed newsletter system prompt, and parses the reply into a
// NewsletterContent record.
type Composer struct {
	llm       ai.Completer
	maxTokens int
}

func NewComposer(llm ai.Completer, maxTokens int) *Composer {
	return &Composer{llm: llm, maxTokens: maxTokens}
}

// Compose generates newsletter content for the given mode. Model-call
// failures propagate; reply-parse failures degrade to a minimal record.
// Every list-typed field of the result is populated, never nil.
func (c *Composer) Compose(ctx context.Context, mode models.ContentType, input Input, wordCount int) (models.NewsletterContent, error) {
	var prompt string
	switch mode {
	case models.ContentTypeResearch:
		prompt = buildResearchPrompt(input, wordCount)
	case models.ContentTypeMinutes:
		prompt = buildMinutesPrompt(input, wordCount)
	case models.ContentTypeHybrid:
		prompt = buildHybridPrompt(input, wordCount)
	default:
		return models.NewsletterContent{}, fmt.Errorf("%w: %s", ErrUnsupportedMode, mode)
	}

	reply, err := c.llm.Complete(ctx, ai.CompletionRequest{
		System:    systemPrompt,
		Prompt:    prompt,
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return models.NewsletterContent{}, fmt.Errorf("composing newsletter: %w", err)
	}

	return parseReply(reply), nil
}

// parseReply decodes the first JSON object span of the reply; when none
// parses it falls back to a minimal record built from the raw reply.
func parseReply(reply string) models.NewsletterContent {
	var content models.NewsletterContent
	if !ai.DecodeLenient(reply, &content) {
		logger.Get().Warn().Msg("Composer reply did not contain parseable JSON, degrading")
		content = models.NewsletterContent{
			Title:           "Newsletter Article",
			Body:            renderMarkdown(reply),
			Excerpt:         ai.Truncate(reply, degradedExcerptLimit),
			SuggestedImages: []string{"Newsletter header image"},
			Sources:         []models.Source{},
			Tags:            []string{"Newsletter"},
			Category:        "Newsletter",
		}
	}

	// List-typed fields are guaranteed present in the returned record.
	if content.Sources == nil {
		content.Sources = []models.Source{}
	}
	if content.Tags == nil {
		content.Tags = []string{}
	}
	if content.SuggestedImages == nil {
		content.SuggestedImages = []string{}
	}

	return content
}

// renderMarkdown converts a raw model reply to HTML for the degraded body.
// Plain prose still comes out wrapped in a paragraph tag.
func renderMarkdown(raw string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(raw), &buf); err != nil {
		return fmt.Sprintf("<p>%s</p>", raw)
	}
	return buf.String()
}
