package markdown

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/askdocs/askdocs-cli/internal/core/domain"
	"github.com/askdocs/askdocs-cli/internal/core/ports/driven"
	"github.com/askdocs/askdocs-cli/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents.
type Normaliser struct{}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns the file extensions this normaliser handles.
func (n *Normaliser) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Normalise strips markdown formatting and returns canonical text.
func (n *Normaliser) Normalise(_ context.Context, _ string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", domain.ErrInvalidInput
	}
	return normalisers.NormaliseWhitespace(stripMarkdown(string(raw))), nil
}

var (
	codeBlock  = regexp.MustCompile("(?s)```[^`]*```")
	inlineCode = regexp.MustCompile("`([^`]+)`")
	images     = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	links      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headings   = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emphasis   = regexp.MustCompile(`(\*{1,3}|_{1,3})([^*_]+)(\*{1,3}|_{1,3})`)
	hrules     = regexp.MustCompile(`(?m)^(-{3,}|\*{3,}|_{3,})\s*$`)
	blockquote = regexp.MustCompile(`(?m)^>\s?`)
	listMarker = regexp.MustCompile(`(?m)^\s*([-*+]|\d+\.)\s+`)
)

// stripMarkdown removes common markdown formatting, keeping the readable
// text. A simplified conversion that covers the usual cases.
func stripMarkdown(content string) string {
	content = codeBlock.ReplaceAllString(content, "")
	content = images.ReplaceAllString(content, "")
	content = links.ReplaceAllString(content, "$1")
	content = inlineCode.ReplaceAllString(content, "$1")
	content = headings.ReplaceAllString(content, "")
	content = emphasis.ReplaceAllString(content, "$2")
	content = hrules.ReplaceAllString(content, "")
	content = blockquote.ReplaceAllString(content, "")
	content = listMarker.ReplaceAllString(content, "")
	return strings.TrimSpace(content)
}
