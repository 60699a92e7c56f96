package service

import (
	"unicode/utf8"

	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
)

// ContentProcessor normalizes user text and renders it for display.
type ContentProcessor interface {
	Normalize(content string) string
	Render(content string) string
}

// prepareContent returns the normalized content and its rendered html.
func prepareContent(p ContentProcessor, content domain.Content, maxLen int) (domain.Content, string, error) {
	normalized := p.Normalize(content)
	if normalized == "" {
		return "", "", errors.Validation("content must not be empty")
	}
	if maxLen > 0 && utf8.RuneCountInString(normalized) > maxLen {
		return "", "", errors.Validation("content exceeds %d characters", maxLen)
	}
	return normalized, p.Render(normalized), nil
}
