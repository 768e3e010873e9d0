package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
)

// HandleStart registers the user, drops any pending input and shows the menu.
func (h *Handler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := messageChatID(update)
	if chatID == 0 {
		logger.Error("invalid update in HandleStart")
		return
	}

	h.withUserLock(chatID, func() {
		if err := h.states.Clear(ctx, chatID); err != nil {
			logger.Error("failed to clear conversation state", "user_id", chatID, "error", err)
		}
		if err := h.service.EnsureUser(ctx, chatID); err != nil {
			h.fail(ctx, b, chatID, "ensure user", err)
			return
		}
		h.sendMenu(ctx, b, chatID, ui.WelcomeText)
	})
}
