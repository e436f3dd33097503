package translate

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	translatev2 "google.golang.org/api/translate/v2"
)

// Translator turns one source-language text into the target language. A single
// call, no retry; callers apply the fail-soft rules.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// GoogleTranslator calls the Google Translate v2 API with an API key.
type GoogleTranslator struct {
	svc    *translatev2.Service
	source string
	target string
}

func NewGoogleTranslator(ctx context.Context, apiKey, source, target string) (*GoogleTranslator, error) {
	svc, err := translatev2.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create translate service: %w", err)
	}
	return &GoogleTranslator{svc: svc, source: source, target: target}, nil
}

func (g *GoogleTranslator) Translate(ctx context.Context, text string) (string, error) {
	resp, err := g.svc.Translations.List([]string{text}, g.target).
		Source(g.source).
		Format("text").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	if len(resp.Translations) == 0 || resp.Translations[0] == nil {
		return "", fmt.Errorf("empty translation response")
	}
	return resp.Translations[0].TranslatedText, nil
}
