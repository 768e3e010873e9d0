package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/importexport"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
)

// HandleExport sends the user's personal words as a CSV document.
func (h *Handler) HandleExport(ctx context.Context, b *bot.Bot, update *models.Update) {
	chatID := messageChatID(update)
	if chatID == 0 {
		logger.Error("invalid update in HandleExport")
		return
	}

	h.withUserLock(chatID, func() {
		if err := h.states.Clear(ctx, chatID); err != nil {
			logger.Error("failed to clear conversation state", "user_id", chatID, "error", err)
		}
		if update.Message.Chat.Type != "" && update.Message.Chat.Type != models.ChatTypePrivate {
			h.sendMenu(ctx, b, chatID, "Экспорт доступен только в личном чате.")
			return
		}

		words, err := h.service.PersonalWords(ctx, chatID)
		if err != nil {
			h.fail(ctx, b, chatID, "export personal words", err)
			return
		}
		if len(words) == 0 {
			h.sendMenu(ctx, b, chatID, ui.EmptyDictionaryText)
			return
		}

		importexport.SortCardsForExport(words)
		data, err := importexport.BuildExportCSV(words)
		if err != nil {
			logger.Error("failed to build export CSV", "user_id", chatID, "error", err)
			h.sendMenu(ctx, b, chatID, ui.StorageErrorText)
			return
		}

		_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID: chatID,
			Document: &models.InputFileUpload{
				Filename: importexport.ExportFilename(time.Now()),
				Data:     bytes.NewReader(data),
			},
			Caption:     fmt.Sprintf("Ваш словарь: %d слов.", len(words)),
			ReplyMarkup: ui.MainMenuKeyboard(),
		})
		if err != nil {
			logger.Error("failed to send export document", "user_id", chatID, "error", err)
			h.sendMenu(ctx, b, chatID, ui.StorageErrorText)
		}
	})
}
