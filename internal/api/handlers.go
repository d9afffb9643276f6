package api

import (
	"context"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gcrc/newsletter-agent/internal/compose"
	"github.com/gcrc/newsletter-agent/internal/config"
	"github.com/gcrc/newsletter-agent/internal/document"
	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/gcrc/newsletter-agent/internal/middleware"
	"github.com/gcrc/newsletter-agent/internal/models"
	"github.com/gcrc/newsletter-agent/internal/storage"
	"github.com/gcrc/newsletter-agent/internal/wordpress"
	"github.com/gofiber/fiber/v2"
)

// PendingCredentials is the placeholder publish result surfaced when
// draft creation fails or is skipped.
const PendingCredentials = "Pending WordPress credentials"

const hybridWordCount = 1000

var allowedUploadTypes = map[string]bool{
	"application/pdf": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// ExtractFunc pulls plain text out of an uploaded file
type ExtractFunc func(path, mimeType string) (string, error)

// Structurer normalizes extracted text into a structured document
type Structurer interface {
	Structure(ctx context.Context, text string) (models.StructuredDocument, error)
}

// Researcher collects raw findings on a topic
type Researcher interface {
	Research(ctx context.Context, topic, context string, sources []string) (models.ResearchFindings, error)
}

// Composer turns research and/or minutes into newsletter content
type Composer interface {
	Compose(ctx context.Context, mode models.ContentType, input compose.Input, wordCount int) (models.NewsletterContent, error)
}

// ImageGenerator produces and fetches a featured image
type ImageGenerator interface {
	Generate(ctx context.Context, description, style string) (string, error)
	Download(ctx context.Context, imageURL, savePath string) (string, error)
}

// Publisher is the WordPress surface the handlers depend on
type Publisher interface {
	TestConnection(ctx context.Context) wordpress.ConnectionStatus
	UploadImage(ctx context.Context, imagePath, altText string) *int
	CreateDraftPost(ctx context.Context, content models.NewsletterContent, featuredImageID *int) (models.PublishResult, error)
	ListCategories(ctx context.Context) ([]byte, int, error)
	ListTags(ctx context.Context) ([]byte, int, error)
	ListDraftPosts(ctx context.Context) ([]byte, int, error)
}

// Handlers owns the injected service handles and sequences the
// generation pipeline for each endpoint.
type Handlers struct {
	cfg        *config.Config
	extract    ExtractFunc
	structurer Structurer
	researcher Researcher
	composer   Composer
	images     ImageGenerator
	publisher  Publisher
	uploads    *storage.Uploads
}

func NewHandlers(
	cfg *config.Config,
	structurer Structurer,
	researcher Researcher,
	composer Composer,
	images ImageGenerator,
	publisher Publisher,
	uploads *storage.Uploads,
) *Handlers {
	return &Handlers{
		cfg:        cfg,
		extract:    document.Extract,
		structurer: structurer,
		researcher: researcher,
		composer:   composer,
		images:     images,
		publisher:  publisher,
		uploads:    uploads,
	}
}

// Root handles GET /
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "GCRC Newsletter Agent API",
		"version": "1.0.0",
		"status":  "operational",
	})
}

// Health handles GET /health
func (h *Handlers) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":      "healthy",
		"environment": h.cfg.Env,
	})
}

// GenerateFromResearch handles POST /api/newsletter/generate/research
func (h *Handlers) GenerateFromResearch(c *fiber.Ctx) error {
	start := time.Now()

	var req models.ResearchRequest
	if err := middleware.ParseAndValidate(c, &req); err != nil {
		return err
	}

	log := logger.Get()
	log.Info().Str("topic", req.Topic).Msg("Starting research generation")

	findings, err := h.researcher.Research(c.Context(), req.Topic, req.Context, req.Sources)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	wordCount := req.WordCount
	if wordCount == 0 {
		wordCount = h.cfg.DefaultWordCount
	}

	content, err := h.composer.Compose(c.Context(), models.ContentTypeResearch, compose.Input{
		Topic:    req.Topic,
		Context:  req.Context,
		Research: &findings,
	}, wordCount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	imageID := h.illustrate(c.Context(), content)
	result := h.publish(c.Context(), content, imageID)

	return c.JSON(h.respond(content, result, start))
}

// GenerateFromMinutes handles POST /api/newsletter/generate/minutes
func (h *Handlers) GenerateFromMinutes(c *fiber.Ctx) error {
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid file type")
	}

	path, err := h.saveUpload(fileHeader)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	defer h.uploads.Remove(path)

	log := logger.Get()
	log.Info().Str("filename", fileHeader.Filename).Msg("Processing document")

	text, err := h.extract(path, contentType)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	doc, err := h.structurer.Structure(c.Context(), text)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	doc.AdditionalContext = c.FormValue("additional_context")
	if items := c.FormValue("highlight_items"); items != "" {
		doc.HighlightItems = splitCommaList(items)
	}

	log.Info().Msg("Generating newsletter from minutes")

	content, err := h.composer.Compose(c.Context(), models.ContentTypeMinutes, compose.Input{
		Minutes: &doc,
	}, h.cfg.DefaultWordCount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	imageID := h.illustrate(c.Context(), content)
	result := h.publish(c.Context(), content, imageID)

	return c.JSON(h.respond(content, result, start))
}

// GenerateHybrid handles POST /api/newsletter/generate/hybrid
func (h *Handlers) GenerateHybrid(c *fiber.Ctx) error {
	start := time.Now()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}

	topic := c.FormValue("research_topic")
	if topic == "" {
		return fiber.NewError(fiber.StatusBadRequest, "research_topic is required")
	}

	path, err := h.saveUpload(fileHeader)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	defer h.uploads.Remove(path)

	log := logger.Get()
	log.Info().Str("filename", fileHeader.Filename).Msg("Processing meeting minutes")

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/plain"
	}

	text, err := h.extract(path, contentType)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	doc, err := h.structurer.Structure(c.Context(), text)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	doc.AdditionalContext = c.FormValue("minutes_context")

	log.Info().Str("topic", topic).Msg("Researching topic")

	findings, err := h.researcher.Research(c.Context(), topic, c.FormValue("research_context"), nil)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	log.Info().Msg("Generating hybrid newsletter")

	content, err := h.composer.Compose(c.Context(), models.ContentTypeHybrid, compose.Input{
		Topic:    topic,
		Minutes:  &doc,
		Research: &findings,
	}, hybridWordCount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	imageID := h.illustrate(c.Context(), content)
	result := h.publish(c.Context(), content, imageID)

	return c.JSON(h.respond(content, result, start))
}

// TestWordPressConnection handles GET /api/wordpress/test-connection
func (h *Handlers) TestWordPressConnection(c *fiber.Ctx) error {
	status := h.publisher.TestConnection(c.Context())
	if !status.Success {
		return fiber.NewError(fiber.StatusInternalServerError, status.Error)
	}
	return c.JSON(status)
}

// GetCategories handles GET /api/wordpress/categories
func (h *Handlers) GetCategories(c *fiber.Ctx) error {
	return h.forward(c, h.publisher.ListCategories, "Failed to fetch categories")
}

// GetTags handles GET /api/wordpress/tags
func (h *Handlers) GetTags(c *fiber.Ctx) error {
	return h.forward(c, h.publisher.ListTags, "Failed to fetch tags")
}

// GetDraftPosts handles GET /api/wordpress/posts/drafts
func (h *Handlers) GetDraftPosts(c *fiber.Ctx) error {
	return h.forward(c, h.publisher.ListDraftPosts, "Failed to fetch drafts")
}

func (h *Handlers) forward(c *fiber.Ctx, list func(context.Context) ([]byte, int, error), failMsg string) error {
	body, status, err := list(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if status != fiber.StatusOK {
		return fiber.NewError(status, failMsg)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}

// illustrate runs the best-effort image stage: generate, download, upload.
// Any failure is logged and reported as a nil media id.
func (h *Handlers) illustrate(ctx context.Context, content models.NewsletterContent) *int {
	description := "Newsletter header image"
	if len(content.SuggestedImages) > 0 {
		description = content.SuggestedImages[0]
	}

	imageURL, err := h.images.Generate(ctx, description, "professional")
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Image generation failed")
		return nil
	}

	path, err := h.images.Download(ctx, imageURL, h.uploads.ImagePath())
	if err != nil {
		logger.Get().Warn().Err(err).Msg("Image download failed")
		return nil
	}

	return h.publisher.UploadImage(ctx, path, description)
}

// publish runs the best-effort draft-creation stage, substituting the
// pending-credentials placeholder when it does not come back successful.
func (h *Handlers) publish(ctx context.Context, content models.NewsletterContent, imageID *int) models.PublishResult {
	result, err := h.publisher.CreateDraftPost(ctx, content, imageID)
	if err != nil {
		logger.Get().Warn().Err(err).Msg("WordPress posting skipped")
		return pendingResult()
	}
	if !result.Success {
		logger.Get().Warn().Str("error", result.Error).Msg("WordPress posting skipped")
		return pendingResult()
	}
	return result
}

func pendingResult() models.PublishResult {
	return models.PublishResult{
		Success:    true,
		EditURL:    PendingCredentials,
		PreviewURL: PendingCredentials,
	}
}

func (h *Handlers) respond(content models.NewsletterContent, result models.PublishResult, start time.Time) models.GenerationResponse {
	return models.GenerationResponse{
		Success:         true,
		WordPressPostID: result.PostID,
		EditURL:         result.EditURL,
		PreviewURL:      result.PreviewURL,
		Content:         &content,
		GenerationTime:  time.Since(start).Seconds(),
		CreatedAt:       time.Now(),
	}
}

func (h *Handlers) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := filepath.Ext(fileHeader.Filename)
	return h.uploads.Save("minutes", ext, src)
}

func splitCommaList(s string) []string {
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
