package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gcrc/newsletter-agent/internal/cache"
	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/gcrc/newsletter-agent/internal/models"
	"github.com/go-resty/resty/v2"
)

// Client talks to the WordPress REST API with application-password basic
// auth. Draft creation and taxonomy resolution never raise past this
// boundary; failures come back inside PublishResult or as nil ids.
type Client struct {
	http    *resty.Client
	baseURL string
	terms   cache.TaxonomyCache
}

// ConnectionStatus is the outcome of a connection test
type ConnectionStatus struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	User    json.RawMessage `json:"user,omitempty"`
	Error   string          `json:"error,omitempty"`
	Details string          `json:"details,omitempty"`
}

type term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type postResponse struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

func NewClient(baseURL, username, appPassword string, terms cache.TaxonomyCache) *Client {
	return &Client{
		http: resty.New().
			SetTimeout(60 * time.Second).
			SetBasicAuth(username, appPassword),
		baseURL: strings.TrimRight(baseURL, "/"),
		terms:   terms,
	}
}

// TestConnection performs one authenticated GET against the current-user
// endpoint. Any non-200 is a failure with the response body attached for
// diagnostics.
func (c *Client) TestConnection(ctx context.Context) ConnectionStatus {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/wp-json/wp/v2/users/me")
	if err != nil {
		return ConnectionStatus{Success: false, Error: fmt.Sprintf("Connection error: %v", err)}
	}
	if resp.StatusCode() != http.StatusOK {
		return ConnectionStatus{
			Success: false,
			Error:   fmt.Sprintf("Connection failed: %d", resp.StatusCode()),
			Details: resp.String(),
		}
	}
	return ConnectionStatus{
		Success: true,
		Message: "Connected to WordPress",
		User:    json.RawMessage(resp.Body()),
	}
}

// UploadImage sends a multipart media upload and returns the new media id
// on 201. Anything else is logged and reported as nil; a missing featured
// image never blocks publication.
func (c *Client) UploadImage(ctx context.Context, imagePath, altText string) *int {
	var media struct {
		ID int `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetFile("file", imagePath).
		SetFormData(map[string]string{"alt_text": altText}).
		SetResult(&media).
		Post(c.baseURL + "/wp-json/wp/v2/media")
	if err != nil {
		logger.Get().Error().Err(err).Str("path", imagePath).Msg("Error uploading image")
		return nil
	}
	if resp.StatusCode() != http.StatusCreated {
		logger.Get().Warn().
			Int("status", resp.StatusCode()).
			Str("body", resp.String()).
			Msg("Image upload failed")
		return nil
	}
	return &media.ID
}

// CreateDraftPost maps the newsletter onto the posts schema and creates a
// draft. A non-201 comes back as an unsuccessful PublishResult; only a
// transport failure returns an error.
func (c *Client) CreateDraftPost(ctx context.Context, content models.NewsletterContent, featuredImageID *int) (models.PublishResult, error) {
	post := models.WordPressPost{
		Title:   content.Title,
		Content: content.Body,
		Excerpt: content.Excerpt,
		Status:  "draft",
		Meta: models.PostMeta{
			AIGenerated:     true,
			Sources:         content.Sources,
			SuggestedImages: content.SuggestedImages,
		},
	}

	if featuredImageID != nil {
		post.FeaturedMedia = *featuredImageID
	}

	category := content.Category
	if category == "" {
		category = "Newsletter"
	}
	if id := c.getOrCreateTerm(ctx, "categories", category); id != nil {
		post.Categories = []int{*id}
	}

	var tagIDs []int
	for _, tag := range content.Tags {
		if id := c.getOrCreateTerm(ctx, "tags", tag); id != nil {
			tagIDs = append(tagIDs, *id)
		}
	}
	if len(tagIDs) > 0 {
		post.Tags = tagIDs
	}

	var created postResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(post).
		SetResult(&created).
		Post(c.baseURL + "/wp-json/wp/v2/posts")
	if err != nil {
		return models.PublishResult{}, fmt.Errorf("creating draft post: %w", err)
	}

	if resp.StatusCode() != http.StatusCreated {
		return models.PublishResult{
			Success: false,
			Error:   fmt.Sprintf("Post creation failed: %d", resp.StatusCode()),
			Details: resp.String(),
		}, nil
	}

	return models.PublishResult{
		Success:    true,
		PostID:     &created.ID,
		EditURL:    fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", c.baseURL, created.ID),
		PreviewURL: created.Link,
	}, nil
}

// getOrCreateTerm resolves a category or tag id by name: cache, then
// search, then create. Errors are logged and swallowed; the post simply
// goes out without the term.
func (c *Client) getOrCreateTerm(ctx context.Context, taxonomy, name string) *int {
	if id, ok, err := c.terms.GetTermID(ctx, taxonomy, name); err == nil && ok {
		return &id
	}

	var matches []term
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("search", name).
		SetResult(&matches).
		Get(c.baseURL + "/wp-json/wp/v2/" + taxonomy)
	if err != nil {
		logger.Get().Error().Err(err).Str("taxonomy", taxonomy).Str("name", name).Msg("Error searching term")
		return nil
	}
	if resp.StatusCode() == http.StatusOK && len(matches) > 0 {
		c.rememberTerm(ctx, taxonomy, name, matches[0].ID)
		return &matches[0].ID
	}

	var created term
	resp, err = c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"name": name}).
		SetResult(&created).
		Post(c.baseURL + "/wp-json/wp/v2/" + taxonomy)
	if err != nil {
		logger.Get().Error().Err(err).Str("taxonomy", taxonomy).Str("name", name).Msg("Error creating term")
		return nil
	}
	if resp.StatusCode() != http.StatusCreated {
		logger.Get().Warn().
			Int("status", resp.StatusCode()).
			Str("taxonomy", taxonomy).
			Str("name", name).
			Msg("Term creation failed")
		return nil
	}

	c.rememberTerm(ctx, taxonomy, name, created.ID)
	return &created.ID
}

func (c *Client) rememberTerm(ctx context.Context, taxonomy, name string, id int) {
	if err := c.terms.SetTermID(ctx, taxonomy, name, id); err != nil {
		logger.Get().Debug().Err(err).Str("taxonomy", taxonomy).Str("name", name).Msg("Term cache write failed")
	}
}

// ListCategories forwards the categories collection
func (c *Client) ListCategories(ctx context.Context) ([]byte, int, error) {
	return c.passthrough(ctx, "/wp-json/wp/v2/categories", nil)
}

// ListTags forwards the tags collection
func (c *Client) ListTags(ctx context.Context) ([]byte, int, error) {
	return c.passthrough(ctx, "/wp-json/wp/v2/tags", nil)
}

// ListDraftPosts forwards the posts collection filtered to drafts
func (c *Client) ListDraftPosts(ctx context.Context) ([]byte, int, error) {
	return c.passthrough(ctx, "/wp-json/wp/v2/posts", map[string]string{"status": "draft"})
}

func (c *Client) passthrough(ctx context.Context, path string, params map[string]string) ([]byte, int, error) {
	req := c.http.R().SetContext(ctx)
	if params != nil {
		req.SetQueryParams(params)
	}
	resp, err := req.Get(c.baseURL + path)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body(), resp.StatusCode(), nil
}
