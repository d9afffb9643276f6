package models

// PostMeta is attached to every generated draft so editors can tell AI
// drafts apart and review the cited sources.
type PostMeta struct {
	AIGenerated     bool     `json:"ai_generated"`
	Sources         []Source `json:"sources"`
	SuggestedImages []string `json:"suggested_images"`
}

// WordPressPost maps NewsletterContent onto the WordPress posts schema
type WordPressPost struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       string   `json:"excerpt"`
	Status        string   `json:"status"`
	Categories    []int    `json:"categories,omitempty"`
	Tags          []int    `json:"tags,omitempty"`
	FeaturedMedia int      `json:"featured_media,omitempty"`
	Meta          PostMeta `json:"meta"`
}

// PublishResult reports the outcome of a draft-creation attempt. The
// publisher never raises past its boundary; failures surface here.
type PublishResult struct {
	Success    bool   `json:"success"`
	PostID     *int   `json:"post_id,omitempty"`
	EditURL    string `json:"edit_url,omitempty"`
	PreviewURL string `json:"preview_url,omitempty"`
	Error      string `json:"error,omitempty"`
	Details    string `json:"details,omitempty"`
}
