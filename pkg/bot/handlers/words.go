package handlers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

func (h *Handler) showPersonalWords(ctx context.Context, b *bot.Bot, chatID int64) {
	words, err := h.service.PersonalWords(ctx, chatID)
	if err != nil {
		h.fail(ctx, b, chatID, "personal words", err)
		return
	}
	if len(words) == 0 {
		h.sendMenu(ctx, b, chatID, ui.EmptyPersonalText)
		return
	}
	h.send(ctx, b, chatID, reply{
		text:     ui.RenderPersonalWords(words),
		markup:   ui.MainMenuKeyboard(),
		markdown: true,
	})
}

func (h *Handler) startAddWord(ctx context.Context, b *bot.Bot, chatID int64) {
	if err := h.setState(ctx, chatID, conversation.AwaitingWord()); err != nil {
		h.fail(ctx, b, chatID, "save add state", err)
		return
	}
	h.send(ctx, b, chatID, reply{text: ui.EnterRussianText, markup: ui.RemoveKeyboard()})
}

// receiveRussian is the first step of adding a word. The text is checked
// here so the user is not asked for a translation of an unusable word.
func (h *Handler) receiveRussian(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	russian := strings.TrimSpace(text)
	if russian == "" {
		h.resetToMenu(ctx, b, chatID, ui.EmptyValueText)
		return
	}
	if utf8.RuneCountInString(russian) > vocabulary.MaxTextLength {
		h.resetToMenu(ctx, b, chatID, ui.TooLongText)
		return
	}
	if err := h.setState(ctx, chatID, conversation.AwaitingTranslation(russian)); err != nil {
		h.fail(ctx, b, chatID, "save add state", err)
		return
	}
	h.send(ctx, b, chatID, reply{text: ui.EnterTranslationText(russian)})
}

func (h *Handler) receiveTranslation(ctx context.Context, b *bot.Bot, chatID int64, russian, text string) {
	english := strings.TrimSpace(text)
	if english == "" {
		h.resetToMenu(ctx, b, chatID, ui.EmptyValueText)
		return
	}

	res, err := h.service.AddPersonalWord(ctx, chatID, russian, english)
	if err != nil {
		h.fail(ctx, b, chatID, "add personal word", err)
		return
	}
	if !res.Added {
		h.resetToMenu(ctx, b, chatID, ui.DuplicateWordText)
		return
	}
	logger.Info("personal word added", "user_id", chatID, "count", res.Count)
	h.resetToMenu(ctx, b, chatID, ui.WordAddedText(russian, res.Count))
}

func (h *Handler) startDeleteWord(ctx context.Context, b *bot.Bot, chatID int64) {
	words, err := h.service.PersonalWords(ctx, chatID)
	if err != nil {
		h.fail(ctx, b, chatID, "personal words", err)
		return
	}
	if len(words) == 0 {
		h.sendMenu(ctx, b, chatID, ui.EmptyDictionaryText)
		return
	}
	if err := h.setState(ctx, chatID, conversation.AwaitingDeleteChoice()); err != nil {
		h.fail(ctx, b, chatID, "save delete state", err)
		return
	}
	h.send(ctx, b, chatID, reply{text: ui.ChooseDeleteText, markup: ui.DeleteKeyboard(words)})
}

func (h *Handler) receiveDeleteChoice(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	choice := strings.TrimSpace(text)
	if choice == ui.ButtonCancel {
		h.resetToMenu(ctx, b, chatID, ui.CancelledText)
		return
	}
	if choice == "" || utf8.RuneCountInString(choice) > vocabulary.MaxTextLength {
		h.resetToMenu(ctx, b, chatID, ui.WordNotFoundText)
		return
	}

	deleted, err := h.service.DeletePersonalWord(ctx, chatID, choice)
	if err != nil {
		h.fail(ctx, b, chatID, "delete personal word", err)
		return
	}
	if !deleted {
		h.resetToMenu(ctx, b, chatID, ui.WordNotFoundText)
		return
	}
	logger.Info("personal word deleted", "user_id", chatID)
	h.resetToMenu(ctx, b, chatID, ui.WordDeletedText(choice))
}
