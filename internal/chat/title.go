package chat

import (
	"context"
	"fmt"
	"strings"

	"chatknowledge/internal/config"
	"chatknowledge/internal/domain/model"
)

const titlePrompt = `Summarize the conversation below as a short title of at most 6 words.
Respond with the title only, no quotes and no trailing punctuation.

%s`

// deriveTitle asks the model for a short topic phrase. Any failure or an
// empty reply falls back to the opening message, so a session always keeps
// a usable title.
func (o *Orchestrator) deriveTitle(ctx context.Context, history []model.ChatMessage) string {
	fallback := ""
	if len(history) > 0 {
		fallback = history[0].Content
	}

	title, err := o.ragService.Generate(ctx, fmt.Sprintf(titlePrompt, renderTranscript(history)))
	if err != nil {
		o.logger.Warn("Title generation failed, keeping fallback", "error", err)
		return fallback
	}
	title = strings.Trim(strings.TrimSpace(title), `"`)
	if title == "" {
		return fallback
	}
	return title
}

// truncateTitle clamps to TitleMaxLen characters, not bytes, so a
// multibyte title is never cut mid-rune.
func truncateTitle(s string) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= config.TitleMaxLen {
		return s
	}
	return string(runes[:config.TitleMaxLen])
}
