package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
)

// Commands is the list published to the Telegram command menu.
var Commands = []models.BotCommand{
	{Command: "start", Description: "Главное меню"},
	{Command: "quiz", Description: "Викторина"},
	{Command: "words", Description: "Список моих слов"},
	{Command: "add", Description: "Добавить слово"},
	{Command: "delete", Description: "Удалить слово"},
	{Command: "export", Description: "Скачать словарь в CSV"},
}

// Register wires every command handler into b. DefaultHandler must be
// installed separately with bot.WithDefaultHandler.
func (h *Handler) Register(b *bot.Bot) {
	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.HandleStart)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/quiz", bot.MatchTypeExact, h.HandleQuiz)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/words", bot.MatchTypeExact, h.HandleWords)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/add", bot.MatchTypeExact, h.HandleAdd)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/delete", bot.MatchTypeExact, h.HandleDelete)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypeExact, h.HandleExport)
}

// PublishCommands sets the bot's command menu.
func PublishCommands(ctx context.Context, b *bot.Bot) error {
	_, err := b.SetMyCommands(ctx, &bot.SetMyCommandsParams{Commands: Commands})
	return err
}

// command runs action for a slash command. Commands abandon any pending input.
func (h *Handler) command(name string, action func(ctx context.Context, b *bot.Bot, chatID int64)) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		chatID := messageChatID(update)
		if chatID == 0 {
			logger.Error("invalid update for command", "command", name)
			return
		}
		h.withUserLock(chatID, func() {
			if err := h.states.Clear(ctx, chatID); err != nil {
				logger.Error("failed to clear conversation state", "user_id", chatID, "error", err)
			}
			action(ctx, b, chatID)
		})
	}
}

func (h *Handler) HandleQuiz(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command("quiz", func(ctx context.Context, b *bot.Bot, chatID int64) {
		h.askQuestion(ctx, b, chatID, "")
	})(ctx, b, update)
}

func (h *Handler) HandleWords(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command("words", h.showPersonalWords)(ctx, b, update)
}

func (h *Handler) HandleAdd(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command("add", h.startAddWord)(ctx, b, update)
}

func (h *Handler) HandleDelete(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.command("delete", h.startDeleteWord)(ctx, b, update)
}
