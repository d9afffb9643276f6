package ai

import "testing"

func TestFirstJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		found bool
	}{
		{
			name:  "bare object",
			input: `{"a":1}`,
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "wrapped in prose",
			input: "Here is the JSON you asked for:\n{\"a\":1}\nLet me know if you need more.",
			want:  `{"a":1}`,
			found: true,
		},
		{
			name:  "greedy across nested objects",
			input: `before {"a":{"b":2}} after`,
			want:  `{"a":{"b":2}}`,
			found: true,
		},
		{
			name:  "no object",
			input: "no json here",
			found: false,
		},
		{
			name:  "closing brace before opening",
			input: "} {",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FirstJSONObject(tt.input)
			if found != tt.found {
				t.Fatalf("FirstJSONObject(%q) found = %v, want %v", tt.input, found, tt.found)
			}
			if found && got != tt.want {
				t.Errorf("FirstJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeLenient(t *testing.T) {
	var out struct {
		Title string `json:"title"`
	}

	if !DecodeLenient("Sure! ```json\n{\"title\":\"Hello\"}\n```", &out) {
		t.Fatal("expected fenced JSON to decode")
	}
	if out.Title != "Hello" {
		t.Errorf("Title = %q, want %q", out.Title, "Hello")
	}

	if DecodeLenient("I could not produce JSON, sorry.", &out) {
		t.Error("expected decode to fail for prose-only reply")
	}

	if DecodeLenient("unbalanced { \"title\": ", &out) {
		t.Error("expected decode to fail for unparseable span")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("Truncate short = %q, want unchanged", got)
	}
	if got := Truncate("hello", 3); got != "hel" {
		t.Errorf("Truncate = %q, want %q", got, "hel")
	}
	if got := Truncate("héllo", 2); got != "hé" {
		t.Errorf("Truncate must count runes, got %q", got)
	}
	if got := Truncate("hello", 0); got != "" {
		t.Errorf("Truncate zero = %q, want empty", got)
	}
}
