package compose

import (
	"encoding/json"
	"fmt"

	"github.com/gcrc/newsletter-agent/internal/ai"
	"github.com/gcrc/newsletter-agent/internal/models"
)

const (
	researchInputLimit = 10000
	hybridInputLimit   = 8000
)

const systemPrompt = `You are a professional newsletter writer for the Goochland County Republican Committee (GCRC).

STYLE GUIDELINES:
- Use clear, accessible language
- Maintain factual accuracy with citations
- Represent conservative values authentically
- Avoid inflammatory or divisive language
- Focus on local Goochland impact
- Include calls-to-action when appropriate

OUTPUT FORMAT:
You must respond with valid JSON in exactly this structure:
{
    "title": "Compelling headline (60-80 characters)",
    "subtitle": "Optional subtitle providing context",
    "body": "Full article in HTML format with proper tags (<p>, <h2>, <h3>, <strong>, <em>, <ul>, <ol>, <a>)",
    "excerpt": "2-3 sentence summary (150-200 characters)",
    "suggested_images": ["Description 1", "Description 2"],
    "sources": [
        {"title": "Source Name or Organization", "url": "", "accessed": ""}
    ],
    "tags": ["tag1", "tag2", "tag3"],
    "category": "Newsletter|Events|Policy|Community"
}

CONTENT REQUIREMENTS:
- Lead with the most newsworthy information
- Use AP style for formatting
- Include specific data and facts WITH SOURCE ATTRIBUTION IN THE TEXT
- Write at an 8th-10th grade reading level
- Include a clear call-to-action
- Make local connections explicit
- Suggest 2-3 relevant, professional images

IN THE BODY TEXT:
- When stating facts, include attribution: "According to the Heritage Foundation, ..."
- For statistics: "The U.S. Census Bureau reports that..."
- For policies: "The Virginia Department of Education announced..."

TONE:
Professional, informative, engaging, and respectful. Represent conservative values authentically while remaining inclusive to all Goochland residents.`

func buildResearchPrompt(input Input, wordCount int) string {
	var raw string
	if input.Research != nil {
		raw = input.Research.RawContent
	}
	topic := input.Topic
	if topic == "" {
		topic = "Recent Developments"
	}

	return fmt.Sprintf(`Create a newsletter article based on this research:

TOPIC: %s

RESEARCH FINDINGS:
%s

ADDITIONAL CONTEXT:
%s

TARGET LENGTH: %d words

Create a compelling newsletter article that:
1. Opens with a strong hook relevant to Goochland residents
2. Explains the issue clearly and concisely
3. Provides specific examples and data WITH SOURCE CITATIONS in the text
4. Analyzes local impact and implications
5. Includes conservative perspective and values
6. Ends with a call-to-action (join, learn more, contact representatives, etc.)
7. CRITICAL: Includes 3-5 sources in the "sources" array based on organizations/publications mentioned in the research

IMPORTANT: In the body text, cite sources naturally:
- "According to [Source], ..."
- "The [Organization] reports that..."
- "[Government Agency] data shows..."

Then list those same sources in the "sources" array.

Remember to output valid JSON as specified in your system prompt.`,
		topic, ai.Truncate(raw, researchInputLimit), input.Context, wordCount)
}

func buildMinutesPrompt(input Input, wordCount int) string {
	return fmt.Sprintf(`Create a newsletter article from these meeting minutes:

MEETING INFORMATION:
%s

TARGET LENGTH: %d words

Transform these meeting minutes into an engaging newsletter that:
1. Highlights the most significant decisions and their importance
2. Explains action items and how they benefit the community
3. Previews upcoming events in an exciting way
4. Recognizes key contributors and volunteers
5. Makes dry information engaging and relevant
6. Includes a call-to-action (attend next meeting, volunteer, etc.)
7. Lists "Goochland County Republican Committee" as a source in the sources array

Use a narrative style that makes readers feel connected to the committee's work.

Remember to output valid JSON as specified in your system prompt.`,
		marshalMinutes(input.Minutes), wordCount)
}

func buildHybridPrompt(input Input, wordCount int) string {
	var raw string
	if input.Research != nil {
		raw = input.Research.RawContent
	}

	return fmt.Sprintf(`Create a comprehensive newsletter article combining meeting updates with topical research:

MEETING SUMMARY:
%s

RESEARCH TOPIC & FINDINGS:
%s

TARGET LENGTH: %d words

Create a cohesive article that:
1. Integrates meeting highlights with broader context
2. Shows how local actions connect to larger issues
3. Balances internal updates with external relevance
4. Maintains narrative flow between sections
5. Provides clear value to readers
6. Includes multiple calls-to-action
7. Lists both "Goochland County Republican Committee" AND research sources (3-5 total)

Remember to output valid JSON as specified in your system prompt.`,
		marshalMinutes(input.Minutes), ai.Truncate(raw, hybridInputLimit), wordCount)
}

// marshalMinutes renders the structured document, full_text included, as
// indented JSON for prompt embedding.
func marshalMinutes(doc *models.StructuredDocument) string {
	if doc == nil {
		return "{}"
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
