package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
)

// DefaultHandler receives every message no command handler matched. Pending
// input takes precedence over menu buttons.
func (h *Handler) DefaultHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := messageChatID(update)
	if chatID == 0 {
		logger.Debug("ignoring update without message")
		return
	}

	h.withUserLock(chatID, func() {
		state, err := h.states.Load(ctx, chatID)
		if err != nil {
			logger.Error("failed to load conversation state", "user_id", chatID, "error", err)
			h.resetToMenu(ctx, b, chatID, ui.StorageErrorText)
			return
		}

		if update.Message.Document != nil && state.IsIdle() {
			h.handleDocument(ctx, b, update)
			return
		}

		text := update.Message.Text
		switch state.Kind {
		case conversation.KindAwaitingQuizAnswer:
			h.checkQuizAnswer(ctx, b, chatID, state, text)
		case conversation.KindAwaitingWord:
			h.receiveRussian(ctx, b, chatID, text)
		case conversation.KindAwaitingTranslation:
			h.receiveTranslation(ctx, b, chatID, state.Russian, text)
		case conversation.KindAwaitingDeleteChoice:
			h.receiveDeleteChoice(ctx, b, chatID, text)
		default:
			h.handleMenu(ctx, b, chatID, text)
		}
	})
}

func (h *Handler) handleMenu(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	text = strings.TrimSpace(text)
	switch text {
	case ui.ButtonQuiz:
		h.askQuestion(ctx, b, chatID, "")
	case ui.ButtonWords:
		h.showPersonalWords(ctx, b, chatID)
	case ui.ButtonAdd:
		h.startAddWord(ctx, b, chatID)
	case ui.ButtonDelete:
		h.startDeleteWord(ctx, b, chatID)
	default:
		if strings.HasPrefix(text, "/") {
			h.sendMenu(ctx, b, chatID, ui.UnknownCommandText)
			return
		}
		h.sendMenu(ctx, b, chatID, ui.UseMenuText)
	}
}

func (h *Handler) handleDocument(ctx context.Context, b *bot.Bot, update *models.Update) {
	if h.importer == nil {
		h.sendMenu(ctx, b, update.Message.Chat.ID, ui.UseMenuText)
		return
	}
	h.importer.HandleDocumentImport(ctx, b, update)
}
