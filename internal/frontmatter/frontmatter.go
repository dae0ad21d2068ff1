// Package frontmatter splits a post into its "---" metadata block and body.
//
// The block is a flat list of "key: value" lines, not YAML. Only the first
// pair of "---" lines delimits it, so a horizontal rule in the body is kept.
package frontmatter

import (
	"encoding/json"
	"strings"
)

const delimiter = "---"

// Frontmatter is the parsed metadata block. Tags are kept apart from the
// other fields because they are the only list-valued key.
type Frontmatter struct {
	Fields map[string]string
	Tags   []string
}

// Get returns the value for key, or "".
func (f Frontmatter) Get(key string) string { return f.Fields[key] }

func (f Frontmatter) Title() string    { return f.Get("title") }
func (f Frontmatter) Date() string     { return f.Get("date") }
func (f Frontmatter) Category() string { return f.Get("category") }
func (f Frontmatter) Summary() string  { return f.Get("summary") }
func (f Frontmatter) Cover() string    { return f.Get("cover") }

// Empty reports whether no keys were parsed.
func (f Frontmatter) Empty() bool { return len(f.Fields) == 0 && f.Tags == nil }

// Parse splits content into frontmatter and a trimmed body. Content that
// does not open with a "---" line, or whose block is never closed, is
// returned unchanged with an empty Frontmatter.
func Parse(content string) (Frontmatter, string) {
	text := strings.TrimPrefix(content, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[0]) != delimiter {
		return Frontmatter{}, content
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			end = i
			break
		}
	}
	if end < 0 {
		return Frontmatter{}, content
	}

	fm := Frontmatter{Fields: make(map[string]string)}
	for _, line := range lines[1:end] {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		value = unquote(strings.TrimSpace(value))
		if key == "tags" {
			fm.Tags = parseTags(value)
			continue
		}
		fm.Fields[key] = value
	}

	body := strings.TrimSpace(strings.Join(lines[end+1:], "\n"))
	return fm, body
}

// parseTags reads a JSON array literal, falling back to a comma split
// when the literal is not valid JSON (e.g. ['a', 'b']).
func parseTags(value string) []string {
	if strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		var tags []string
		if err := json.Unmarshal([]byte(value), &tags); err == nil {
			return tags
		}
		value = value[1 : len(value)-1]
	}
	tags := []string{}
	for _, part := range strings.Split(value, ",") {
		t := strings.TrimSpace(part)
		t = strings.TrimLeft(t, `"'`)
		t = strings.TrimRight(t, `"'`)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
