package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/importexport"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/quiz"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

// Handler routes chat updates to the vocabulary service and quiz engine,
// tracking what each user is expected to send next.
type Handler struct {
	service  *vocabulary.Service
	states   conversation.StateStore
	locker   *conversation.Locker
	importer *importexport.Importer
	pick     func([]vocabulary.WordCard) (quiz.Question, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithImporter enables CSV uploads.
func WithImporter(importer *importexport.Importer) Option {
	return func(h *Handler) {
		h.importer = importer
	}
}

// WithQuestionPicker replaces quiz.PickQuestion.
func WithQuestionPicker(pick func([]vocabulary.WordCard) (quiz.Question, error)) Option {
	return func(h *Handler) {
		if pick != nil {
			h.pick = pick
		}
	}
}

func New(service *vocabulary.Service, states conversation.StateStore, opts ...Option) (*Handler, error) {
	if service == nil {
		return nil, errors.New("handlers: vocabulary service required")
	}
	if states == nil {
		return nil, errors.New("handlers: state store required")
	}
	h := &Handler{
		service: service,
		states:  states,
		locker:  conversation.NewLocker(),
		pick:    quiz.PickQuestion,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// messageChatID returns the chat id of a message update, or 0 for anything
// the handlers cannot answer.
func messageChatID(update *models.Update) int64 {
	if update == nil || update.Message == nil {
		return 0
	}
	return update.Message.Chat.ID
}

// withUserLock runs fn while holding the user's lock so two events of the
// same chat never interleave.
func (h *Handler) withUserLock(userID int64, fn func()) {
	unlock := h.locker.Lock(userID)
	defer unlock()
	fn()
}

type reply struct {
	text     string
	markup   models.ReplyMarkup
	markdown bool
}

func (h *Handler) send(ctx context.Context, b *bot.Bot, chatID int64, r reply) {
	params := &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        r.text,
		ReplyMarkup: r.markup,
	}
	if r.markdown {
		params.ParseMode = models.ParseModeMarkdown
	}
	if _, err := b.SendMessage(ctx, params); err != nil {
		logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func (h *Handler) sendMenu(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.send(ctx, b, chatID, reply{text: text, markup: ui.MainMenuKeyboard()})
}

func (h *Handler) setState(ctx context.Context, userID int64, state conversation.State) error {
	if err := h.states.Save(ctx, userID, state); err != nil {
		return errors.Join(vocabulary.ErrStorage, err)
	}
	return nil
}

// resetToMenu clears pending input and shows the main menu with text.
func (h *Handler) resetToMenu(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	if err := h.states.Clear(ctx, chatID); err != nil {
		logger.Error("failed to clear conversation state", "user_id", chatID, "error", err)
	}
	h.sendMenu(ctx, b, chatID, text)
}

// fail reports err to the user. Validation problems get a specific hint;
// everything else is treated as a storage fault.
func (h *Handler) fail(ctx context.Context, b *bot.Bot, chatID int64, op string, err error) {
	if errors.Is(err, vocabulary.ErrInvalidText) {
		logger.Debug("rejected user input", "op", op, "user_id", chatID, "error", err)
		h.resetToMenu(ctx, b, chatID, ui.TooLongText)
		return
	}
	logger.Error("vocabulary operation failed", "op", op, "user_id", chatID, "error", err)
	h.resetToMenu(ctx, b, chatID, ui.StorageErrorText)
}
