package document

import (
	"context"
	"fmt"

	"github.com/gcrc/newsletter-agent/internal/ai"
	"github.com/gcrc/newsletter-agent/internal/logger"
	"github.com/gcrc/newsletter-agent/internal/models"
)

const (
	// Input is capped before the model call to stay inside the context budget.
	structureInputLimit = 15000
	structureMaxTokens  = 3000

	degradedSummaryLimit = 500
	degradedRawLimit     = 5000
)

// Structurer turns extracted document text into a StructuredDocument via
// one model call. JSON-parse failures degrade to a minimal record; only a
// failed model call propagates as an error.
type Structurer struct {
	llm ai.Completer
}

func NewStructurer(llm ai.Completer) *Structurer {
	return &Structurer{llm: llm}
}

// Structure extracts structured information from document text. FullText
// is always populated with the complete source text, whatever the parse
// outcome.
func (s *Structurer) Structure(ctx context.Context, text string) (models.StructuredDocument, error) {
	prompt := buildStructurePrompt(ai.Truncate(text, structureInputLimit))

	reply, err := s.llm.Complete(ctx, ai.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: structureMaxTokens,
	})
	if err != nil {
		return models.StructuredDocument{}, fmt.Errorf("structuring document: %w", err)
	}

	var doc models.StructuredDocument
	if !ai.DecodeLenient(reply, &doc) {
		logger.Get().Warn().Msg("Structurer reply did not contain parseable JSON, degrading")
		doc = models.StructuredDocument{
			DocumentType: "general",
			Summary:      ai.Truncate(reply, degradedSummaryLimit),
			RawContent:   ai.Truncate(text, degradedRawLimit),
		}
	}
	doc.FullText = text

	return doc, nil
}

func buildStructurePrompt(text string) string {
	return fmt.Sprintf(`Analyze the following meeting minutes or document and extract structured information:

DOCUMENT TEXT:
%s

Extract the following information in JSON format:
{
    "document_type": "meeting_minutes|report|general",
    "date": "YYYY-MM-DD if available",
    "title": "Document title or meeting name",
    "attendees": ["list of attendees if applicable"],
    "key_decisions": ["list of major decisions made"],
    "action_items": [
        {"item": "description", "owner": "responsible party", "deadline": "date if mentioned"}
    ],
    "discussions": ["main topics discussed"],
    "upcoming_events": [
        {"event": "name", "date": "date", "details": "description"}
    ],
    "important_announcements": ["any significant announcements"],
    "summary": "2-3 sentence summary of the document"
}

Be thorough and extract all relevant information. If a field doesn't apply, use an empty array or null.`, text)
}
