package ai

import (
	"encoding/json"
	"strings"
)

// Model replies frequently wrap the requested JSON object in prose or
// markdown fences. FirstJSONObject returns the greedy span from the first
// '{' to the last '}' so callers can decode just that.
func FirstJSONObject(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return s[start : end+1], true
}

// DecodeLenient extracts the first JSON object span from a model reply and
// decodes it into v. It reports false when no span is present or the span
// does not parse; callers are expected to degrade rather than error.
func DecodeLenient(reply string, v any) bool {
	span, ok := FirstJSONObject(reply)
	if !ok {
		return false
	}
	return json.Unmarshal([]byte(span), v) == nil
}

// Truncate limits s to at most n runes. Prompts embed caller-supplied text
// and model context budgets are counted in characters here, as the prompt
// templates document.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
