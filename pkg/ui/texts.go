package ui

import (
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/smith3v/tg-vocab-trainer/pkg/quiz"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

// Menu buttons. Incoming message text is matched against these exactly.
const (
	ButtonQuiz   = "Викторина 🧠"
	ButtonWords  = "Список слов 📖"
	ButtonAdd    = "Добавить слово ➕"
	ButtonDelete = "Удалить слово 🔙"
	ButtonExit   = quiz.ExitMenuText
	ButtonCancel = "Отмена"
)

const WelcomeText = "Привет 👋 Давай попрактикуемся в английском языке. " +
	"Тренировки можешь проходить в удобном для себя темпе.\n\n" +
	"У тебя есть возможность использовать тренажёр, как конструктор, " +
	"и собирать свою собственную базу для обучения. Для этого воспользуйся " +
	"инструментами:\n\n" +
	ButtonAdd + "\n" +
	ButtonDelete + "\n" +
	"Начать " + ButtonQuiz + "\n" +
	"Ну что, начнём ⬇️"

const (
	UseMenuText         = "Используйте кнопки меню."
	BackToMenuText      = "Возвращаюсь в меню..."
	NeedMoreWordsText   = "Нужно минимум 4 слова в базе! Добавьте свои слова."
	WrongAnswerText     = "Неверно ❌ Попробуй еще раз!"
	CorrectAnswerPrefix = "Отлично! ✨"
	EnterRussianText    = "Введите слово на русском:"
	EmptyValueText      = "Пустое значение. Попробуйте снова через меню."
	DuplicateWordText   = "Такое слово уже есть в вашем персональном словаре."
	EmptyPersonalText   = "Ваш личный список слов пока пуст. Добавьте новые слова кнопкой ➕"
	EmptyDictionaryText = "Ваш личный словарь пуст!"
	ChooseDeleteText    = "Выберите слово из списка для удаления:"
	CancelledText       = "Отменено."
	WordNotFoundText    = "Слово не найдено."
	StorageErrorText    = "Не удалось обратиться к словарю. Попробуйте позже."
	UnknownCommandText  = "Неизвестная команда. Нажмите /start, чтобы открыть меню."
)

// TooLongText is sent when a word or translation exceeds the length limit.
var TooLongText = fmt.Sprintf("Слово должно быть не длиннее %d символов. Попробуйте снова через меню.", vocabulary.MaxTextLength)

func EnterTranslationText(russian string) string {
	return fmt.Sprintf("Введите перевод для '%s':", russian)
}

func WordAddedText(russian string, count int) string {
	return fmt.Sprintf("Слово '%s' добавлено!\nВы изучаете %d персональных слов.", russian, count)
}

func WordDeletedText(russian string) string {
	return fmt.Sprintf("Слово '%s' удалено из вашего словаря!", russian)
}

// RenderQuestion returns a MarkdownV2 prompt for russian, optionally
// preceded by feedback on the previous answer.
func RenderQuestion(prefix, russian string) string {
	question := fmt.Sprintf("Как переводится слово: *%s*?", bot.EscapeMarkdown(russian))
	if prefix == "" {
		return question
	}
	return bot.EscapeMarkdown(prefix) + "\n\n" + question
}

// RenderPersonalWords returns the MarkdownV2 numbered word list.
func RenderPersonalWords(cards []vocabulary.WordCard) string {
	var sb strings.Builder
	sb.WriteString("📝 *Ваш личный словарь:*\n\n")
	for i, card := range cards {
		fmt.Fprintf(&sb, "%d\\. %s — %s\n", i+1, bot.EscapeMarkdown(card.Russian), bot.EscapeMarkdown(card.English))
	}
	return sb.String()
}
