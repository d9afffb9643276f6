package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/gcrc/newsletter-agent/internal/ai"
	"github.com/gcrc/newsletter-agent/internal/models"
)

const researchMaxTokens = 4000

// Engine researches a topic with a single model call. No web access is
// performed; the model answers from trained knowledge and the prompt
// carries an explicit date-boundary caveat.
type Engine struct {
	llm ai.Completer
}

func NewEngine(llm ai.Completer) *Engine {
	return &Engine{llm: llm}
}

// Research collects the model's free-text reply as raw findings. Citations
// and key points are placeholders reserved for a later verification pass.
func (e *Engine) Research(ctx context.Context, topic, context_ string, sources []string) (models.ResearchFindings, error) {
	prompt := buildResearchPrompt(topic, context_, sources)

	reply, err := e.llm.Complete(ctx, ai.CompletionRequest{
		Prompt:    prompt,
		MaxTokens: researchMaxTokens,
	})
	if err != nil {
		return models.ResearchFindings{}, fmt.Errorf("researching topic %q: %w", topic, err)
	}

	return models.ResearchFindings{
		Findings:   []string{reply},
		Citations:  []string{},
		KeyPoints:  []string{},
		RawContent: reply,
	}, nil
}

func buildResearchPrompt(topic, context string, sources []string) string {
	var sb strings.Builder
	sb.WriteString("Research and provide comprehensive information on the following topic for a Republican political newsletter targeting Goochland County, Virginia constituents:\n\n")
	sb.WriteString(fmt.Sprintf("TOPIC: %s\n", topic))

	if context != "" {
		sb.WriteString(fmt.Sprintf("\nADDITIONAL CONTEXT: %s", context))
	}
	if len(sources) > 0 {
		sb.WriteString(fmt.Sprintf("\nPRIORITY SOURCES TO REFERENCE: %s", strings.Join(sources, ", ")))
	}

	sb.WriteString(`

Please provide:
1. Recent factual developments and news on this topic
2. Relevant legislation, policy updates, or government actions
3. Local Virginia/Goochland implications
4. Conservative perspective and analysis
5. Supporting statistics and data (use your training knowledge)
6. Key stakeholders and their positions

Format your response as a research summary that includes:
- Main findings
- Key facts and statistics
- Relevant quotes or statements
- Implications for Goochland County residents
- Conservative policy perspective

Note: Use your knowledge through your training cutoff. Focus on factual, well-sourced information.`)

	return sb.String()
}
