package jira

import (
	"encoding/json"
	"strings"
)

// adfNode is the recursive shape of an ADF (Atlassian Document Format) tree.
type adfNode struct {
	Type    string          `json:"type"`
	Text    string          `json:"text,omitempty"`
	Content []adfNode       `json:"content,omitempty"`
	Attrs   json.RawMessage `json:"attrs,omitempty"`
}

// ADFToText extracts plain text from an ADF document. Jira's v3 API returns
// descriptions and comment bodies as ADF JSON; older payloads may carry a
// bare string instead, which is returned as-is.
func ADFToText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var doc adfNode
	if err := json.Unmarshal(raw, &doc); err != nil || doc.Type != "doc" {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return string(raw)
	}

	var lines []string
	for _, block := range doc.Content {
		flattenBlock(block, "", &lines)
	}
	return strings.Join(lines, "\n")
}

// flattenBlock renders one top-level ADF block as one or more text lines.
func flattenBlock(n adfNode, prefix string, lines *[]string) {
	switch n.Type {
	case "paragraph", "heading":
		text := inlineText(n)
		if text != "" || n.Type == "paragraph" {
			*lines = append(*lines, prefix+text)
		}
	case "bulletList", "orderedList":
		for _, item := range n.Content {
			// listItem wraps nested blocks
			for _, inner := range item.Content {
				flattenBlock(inner, prefix+"- ", lines)
			}
		}
	case "codeBlock":
		for _, line := range strings.Split(inlineText(n), "\n") {
			*lines = append(*lines, prefix+line)
		}
	case "blockquote":
		for _, inner := range n.Content {
			flattenBlock(inner, prefix+"> ", lines)
		}
	case "rule":
		*lines = append(*lines, prefix+"---")
	default:
		if text := inlineText(n); text != "" {
			*lines = append(*lines, prefix+text)
		}
	}
}

// inlineText concatenates the text of all inline children.
func inlineText(n adfNode) string {
	if n.Text != "" {
		return n.Text
	}
	var b strings.Builder
	for _, child := range n.Content {
		b.WriteString(inlineText(child))
	}
	return b.String()
}

// TextToADF converts plain text to a minimal ADF document, one paragraph
// per input line. Empty input returns nil so that callers can omit the
// field entirely.
func TextToADF(text string) json.RawMessage {
	if text == "" {
		return nil
	}

	var content []any
	for _, para := range strings.Split(text, "\n") {
		if para == "" {
			content = append(content, map[string]any{
				"type":    "paragraph",
				"content": []any{},
			})
			continue
		}
		content = append(content, map[string]any{
			"type": "paragraph",
			"content": []any{
				map[string]any{"type": "text", "text": para},
			},
		})
	}

	doc := map[string]any{
		"type":    "doc",
		"version": 1,
		"content": content,
	}

	data, _ := json.Marshal(doc)
	return data
}
