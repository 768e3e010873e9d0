package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-vocab-trainer/pkg/bot/conversation"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
	"github.com/smith3v/tg-vocab-trainer/pkg/quiz"
	"github.com/smith3v/tg-vocab-trainer/pkg/ui"
)

// askQuestion draws a new question from the user's training words and
// waits for the answer. prefix is feedback on the previous answer.
func (h *Handler) askQuestion(ctx context.Context, b *bot.Bot, chatID int64, prefix string) {
	words, err := h.service.TrainingWords(ctx, chatID)
	if err != nil {
		h.fail(ctx, b, chatID, "training words", err)
		return
	}

	question, err := h.pick(words)
	if errors.Is(err, quiz.ErrInsufficientData) {
		h.resetToMenu(ctx, b, chatID, ui.NeedMoreWordsText)
		return
	}
	if err != nil {
		h.fail(ctx, b, chatID, "pick question", err)
		return
	}

	state := conversation.AwaitingQuizAnswer(question.Target.Russian, question.Correct())
	if err := h.setState(ctx, chatID, state); err != nil {
		h.fail(ctx, b, chatID, "save quiz state", err)
		return
	}
	logger.Debug("quiz question", "user_id", chatID, "word_id", question.Target.ID, "pool", len(words))

	h.send(ctx, b, chatID, reply{
		text:     ui.RenderQuestion(prefix, question.Target.Russian),
		markup:   ui.QuizKeyboard(question.Options),
		markdown: true,
	})
}

// checkQuizAnswer handles a reply while a question is pending. A wrong
// answer keeps the same question.
func (h *Handler) checkQuizAnswer(ctx context.Context, b *bot.Bot, chatID int64, state conversation.State, text string) {
	answer := strings.TrimSpace(text)
	if quiz.IsExitToken(answer) {
		h.resetToMenu(ctx, b, chatID, ui.BackToMenuText)
		return
	}
	if quiz.CheckAnswer(answer, state.Correct) {
		h.askQuestion(ctx, b, chatID, ui.CorrectAnswerPrefix)
		return
	}
	h.send(ctx, b, chatID, reply{text: ui.WrongAnswerText})
}
