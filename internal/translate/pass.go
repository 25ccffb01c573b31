// Package translate applies best-effort, per-field translation to the
// document view. Fields fail independently: a failed call leaves that
// field in its prior language and the pass moves on, so the reader sees
// a partially translated page rather than nothing.
package translate

import (
	"context"
	"log"
	"strings"

	"govlens/internal/api"
)

// TextTranslator is the slice of the API client the pass needs.
type TextTranslator interface {
	Translate(ctx context.Context, req api.TranslateRequest) (*api.TranslateResponse, error)
}

// Pass translates a set of text fields in place.
type Pass struct {
	client TextTranslator
}

// NewPass creates a translation pass backed by client.
func NewPass(client TextTranslator) *Pass {
	return &Pass{client: client}
}

// Fields translates each non-empty field from source to target in place
// and returns how many fields were actually translated. When target
// equals source no network call is made at all; the caller is expected
// to reload original-language content instead.
func (p *Pass) Fields(ctx context.Context, target, source string, fields []*string) int {
	if target == source {
		return 0
	}

	translated := 0
	for _, field := range fields {
		if field == nil || strings.TrimSpace(*field) == "" {
			continue
		}
		resp, err := p.client.Translate(ctx, api.TranslateRequest{
			Text:           *field,
			TargetLanguage: target,
			SourceLanguage: source,
		})
		if err != nil {
			// Swallowed deliberately: the field keeps its prior text.
			log.Printf("translate: field skipped: %v", err)
			continue
		}
		if resp.TranslatedText != "" {
			*field = resp.TranslatedText
			translated++
		}
	}
	return translated
}
