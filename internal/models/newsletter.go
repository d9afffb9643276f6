package models

import "time"

// ContentType selects which prompt template and input shape the composer uses
type ContentType string

const (
	ContentTypeResearch ContentType = "research"
	ContentTypeMinutes  ContentType = "minutes"
	ContentTypeHybrid   ContentType = "hybrid"
)

// ResearchRequest is the body of POST /api/newsletter/generate/research
type ResearchRequest struct {
	Topic     string   `json:"topic" validate:"required"`
	Context   string   `json:"context"`
	Sources   []string `json:"sources"`
	WordCount int      `json:"word_count" validate:"omitempty,min=100,max=5000"`
}

// MinutesRequest carries the optional form fields of a minutes upload
type MinutesRequest struct {
	AdditionalContext string   `json:"additional_context"`
	HighlightItems    []string `json:"highlight_items"`
}

// HybridRequest carries the form fields of a hybrid upload
type HybridRequest struct {
	ResearchTopic   string `json:"research_topic" validate:"required"`
	ResearchContext string `json:"research_context"`
	MinutesContext  string `json:"minutes_context"`
}

// ActionItem is a single task extracted from meeting minutes
type ActionItem struct {
	Item     string `json:"item"`
	Owner    string `json:"owner,omitempty"`
	Deadline string `json:"deadline,omitempty"`
}

// UpcomingEvent is an event announced in meeting minutes
type UpcomingEvent struct {
	Event   string `json:"event"`
	Date    string `json:"date,omitempty"`
	Details string `json:"details,omitempty"`
}

// StructuredDocument is the normalized representation of an uploaded
// document produced by the structurer. FullText always holds the complete
// extracted source text, whatever the model reply looked like.
type StructuredDocument struct {
	DocumentType      string          `json:"document_type"`
	Date              string          `json:"date,omitempty"`
	Title             string          `json:"title,omitempty"`
	Attendees         []string        `json:"attendees,omitempty"`
	KeyDecisions      []string        `json:"key_decisions,omitempty"`
	ActionItems       []ActionItem    `json:"action_items,omitempty"`
	Discussions       []string        `json:"discussions,omitempty"`
	UpcomingEvents    []UpcomingEvent `json:"upcoming_events,omitempty"`
	Announcements     []string        `json:"important_announcements,omitempty"`
	Summary           string          `json:"summary,omitempty"`
	RawContent        string          `json:"raw_content,omitempty"`
	AdditionalContext string          `json:"additional_context,omitempty"`
	HighlightItems    []string        `json:"highlight_items,omitempty"`
	FullText          string          `json:"full_text"`
}

// ResearchFindings holds the free-text output of a research call.
// Citations and KeyPoints are reserved for future use and stay empty.
type ResearchFindings struct {
	Findings   []string `json:"findings"`
	Citations  []string `json:"citations"`
	KeyPoints  []string `json:"key_points"`
	RawContent string   `json:"raw_content"`
}

// Source is a single attribution entry in a newsletter
type Source struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Accessed string `json:"accessed"`
}

// NewsletterContent is the terminal artifact of the generation pipeline
type NewsletterContent struct {
	Title           string         `json:"title"`
	Subtitle        string         `json:"subtitle,omitempty"`
	Body            string         `json:"body"` // HTML formatted
	Excerpt         string         `json:"excerpt"`
	SuggestedImages []string       `json:"suggested_images"`
	Sources         []Source       `json:"sources"`
	Tags            []string       `json:"tags"`
	Category        string         `json:"category"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// GenerationResponse is the envelope returned by all three generation endpoints
type GenerationResponse struct {
	Success         bool               `json:"success"`
	WordPressPostID *int               `json:"wordpress_post_id"`
	EditURL         string             `json:"edit_url"`
	PreviewURL      string             `json:"preview_url"`
	Content         *NewsletterContent `json:"content"`
	Error           string             `json:"error,omitempty"`
	GenerationTime  float64            `json:"generation_time"`
	CreatedAt       time.Time          `json:"created_at"`
}
