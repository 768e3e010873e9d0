package ui

import (
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

func buttons(texts []string) []models.KeyboardButton {
	return lo.Map(texts, func(text string, _ int) models.KeyboardButton {
		return models.KeyboardButton{Text: text}
	})
}

// MainMenuKeyboard is the 2x2 menu shown whenever the user is idle.
func MainMenuKeyboard() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			buttons([]string{ButtonQuiz, ButtonWords}),
			buttons([]string{ButtonAdd, ButtonDelete}),
		},
		ResizeKeyboard: true,
	}
}

// QuizKeyboard lays the answer options out two per row, followed by the exit row.
func QuizKeyboard(options []string) *models.ReplyKeyboardMarkup {
	rows := lo.Map(lo.Chunk(options, 2), func(chunk []string, _ int) []models.KeyboardButton {
		return buttons(chunk)
	})
	rows = append(rows, buttons([]string{ButtonExit}))
	return &models.ReplyKeyboardMarkup{
		Keyboard:       rows,
		ResizeKeyboard: true,
	}
}

// DeleteKeyboard offers one button per personal word plus a cancel button.
func DeleteKeyboard(cards []vocabulary.WordCard) *models.ReplyKeyboardMarkup {
	rows := lo.Map(cards, func(card vocabulary.WordCard, _ int) []models.KeyboardButton {
		return buttons([]string{card.Russian})
	})
	rows = append(rows, buttons([]string{ButtonCancel}))
	return &models.ReplyKeyboardMarkup{
		Keyboard:        rows,
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
	}
}

func RemoveKeyboard() *models.ReplyKeyboardRemove {
	return &models.ReplyKeyboardRemove{RemoveKeyboard: true}
}
