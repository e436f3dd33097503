package translate

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-1.5-flash"

// Text longer than this is cut before prompting, on a rune boundary.
const geminiMaxChars = 6000

// GeminiTranslator is the alternative provider, selected with
// TRANSLATOR=gemini. It prompts a Gemini model for a plain translation.
type GeminiTranslator struct {
	client *genai.Client
	target string
}

func NewGeminiTranslator(ctx context.Context, apiKey, target string) (*GeminiTranslator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiTranslator{client: client, target: target}, nil
}

func (g *GeminiTranslator) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *GeminiTranslator) Translate(ctx context.Context, text string) (string, error) {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > geminiMaxChars {
		runes := []rune(text)
		text = string(runes[:geminiMaxChars])
	}

	prompt := fmt.Sprintf(`Translate the following English news text to %s.
Keep the meaning and journalistic tone. Do not translate proper names of brands or organizations.
Return only the translation, without commentary or notes.

%s`, languageName(g.target), text)

	model := g.client.GenerativeModel(geminiModel)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	out := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if out == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return out, nil
}

func languageName(code string) string {
	switch code {
	case "zh", "zh-CN":
		return "Simplified Chinese"
	case "zh-TW":
		return "Traditional Chinese"
	default:
		return code
	}
}
