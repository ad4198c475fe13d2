package jira

import (
	"encoding/json"
	"testing"
)

func TestADFToText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "empty",
			raw:  "",
			want: "",
		},
		{
			name: "null",
			raw:  "null",
			want: "",
		},
		{
			name: "bare string",
			raw:  `"plain description"`,
			want: "plain description",
		},
		{
			name: "single paragraph",
			raw:  `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}`,
			want: "hello",
		},
		{
			name: "two paragraphs",
			raw:  `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"one"}]},{"type":"paragraph","content":[{"type":"text","text":"two"}]}]}`,
			want: "one\ntwo",
		},
		{
			name: "split inline text",
			raw:  `{"type":"doc","version":1,"content":[{"type":"paragraph","content":[{"type":"text","text":"bold"},{"type":"text","text":" and plain"}]}]}`,
			want: "bold and plain",
		},
		{
			name: "bullet list",
			raw:  `{"type":"doc","version":1,"content":[{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"first"}]}]},{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"second"}]}]}]}]}`,
			want: "- first\n- second",
		},
		{
			name: "heading",
			raw:  `{"type":"doc","version":1,"content":[{"type":"heading","attrs":{"level":2},"content":[{"type":"text","text":"Steps"}]}]}`,
			want: "Steps",
		},
		{
			name: "code block",
			raw:  `{"type":"doc","version":1,"content":[{"type":"codeBlock","content":[{"type":"text","text":"a\nb"}]}]}`,
			want: "a\nb",
		},
		{
			name: "blockquote",
			raw:  `{"type":"doc","version":1,"content":[{"type":"blockquote","content":[{"type":"paragraph","content":[{"type":"text","text":"quoted"}]}]}]}`,
			want: "> quoted",
		},
		{
			name: "rule",
			raw:  `{"type":"doc","version":1,"content":[{"type":"rule"}]}`,
			want: "---",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ADFToText(json.RawMessage(tt.raw))
			if got != tt.want {
				t.Errorf("ADFToText(%s) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestTextToADF(t *testing.T) {
	if got := TextToADF(""); got != nil {
		t.Errorf("TextToADF(\"\") = %s, want nil", got)
	}

	raw := TextToADF("line one\nline two")
	var doc struct {
		Type    string `json:"type"`
		Version int    `json:"version"`
		Content []struct {
			Type string `json:"type"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Type != "doc" || doc.Version != 1 {
		t.Errorf("document envelope = %s v%d", doc.Type, doc.Version)
	}
	if len(doc.Content) != 2 {
		t.Fatalf("got %d blocks, want 2", len(doc.Content))
	}
	for _, block := range doc.Content {
		if block.Type != "paragraph" {
			t.Errorf("block type = %q, want paragraph", block.Type)
		}
	}
}

func TestTextToADFRoundTrip(t *testing.T) {
	tests := []string{
		"single line",
		"first\nsecond",
		"before\n\nafter",
	}
	for _, text := range tests {
		if got := ADFToText(TextToADF(text)); got != text {
			t.Errorf("round trip of %q gave %q", text, got)
		}
	}
}
