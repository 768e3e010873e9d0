package ui

import (
	"strings"
	"testing"

	"github.com/go-telegram/bot/models"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

func rowTexts(row []models.KeyboardButton) []string {
	texts := make([]string, 0, len(row))
	for _, button := range row {
		texts = append(texts, button.Text)
	}
	return texts
}

func TestMainMenuKeyboard(t *testing.T) {
	kb := MainMenuKeyboard()
	if len(kb.Keyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(kb.Keyboard))
	}
	first, second := rowTexts(kb.Keyboard[0]), rowTexts(kb.Keyboard[1])
	if strings.Join(first, "|") != ButtonQuiz+"|"+ButtonWords {
		t.Fatalf("unexpected first row: %v", first)
	}
	if strings.Join(second, "|") != ButtonAdd+"|"+ButtonDelete {
		t.Fatalf("unexpected second row: %v", second)
	}
	if !kb.ResizeKeyboard {
		t.Fatalf("expected resizable keyboard")
	}
}

func TestQuizKeyboard(t *testing.T) {
	kb := QuizKeyboard([]string{"Red", "Blue", "Green", "Dog"})
	if len(kb.Keyboard) != 3 {
		t.Fatalf("expected 2 option rows and an exit row, got %d rows", len(kb.Keyboard))
	}
	if got := rowTexts(kb.Keyboard[0]); len(got) != 2 || got[0] != "Red" || got[1] != "Blue" {
		t.Fatalf("unexpected first row: %v", got)
	}
	if got := rowTexts(kb.Keyboard[2]); len(got) != 1 || got[0] != ButtonExit {
		t.Fatalf("expected exit row, got %v", got)
	}
}

func TestDeleteKeyboard(t *testing.T) {
	kb := DeleteKeyboard([]vocabulary.WordCard{
		{ID: 1, Russian: "Кот", English: "Cat"},
		{ID: 2, Russian: "Дом", English: "House"},
	})
	if len(kb.Keyboard) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(kb.Keyboard))
	}
	if kb.Keyboard[0][0].Text != "Кот" || kb.Keyboard[1][0].Text != "Дом" {
		t.Fatalf("unexpected word rows: %+v", kb.Keyboard)
	}
	if kb.Keyboard[2][0].Text != ButtonCancel {
		t.Fatalf("expected cancel row, got %+v", kb.Keyboard[2])
	}
	if !kb.OneTimeKeyboard {
		t.Fatalf("expected one-time keyboard")
	}
}

func TestRenderQuestionEscapesMarkdown(t *testing.T) {
	got := RenderQuestion(CorrectAnswerPrefix, "мир_2")
	want := "Отлично\\! ✨\n\nКак переводится слово: *мир\\_2*?"
	if got != want {
		t.Fatalf("unexpected question:\n%q\nwant\n%q", got, want)
	}
	if got := RenderQuestion("", "Кот"); got != "Как переводится слово: *Кот*?" {
		t.Fatalf("unexpected question without prefix: %q", got)
	}
}

func TestRenderPersonalWords(t *testing.T) {
	got := RenderPersonalWords([]vocabulary.WordCard{
		{Russian: "Кот", English: "Cat"},
		{Russian: "Мороженое", English: "Ice-cream"},
	})
	if !strings.Contains(got, "1\\. Кот — Cat\n") {
		t.Fatalf("expected first numbered line, got %q", got)
	}
	if !strings.Contains(got, "2\\. Мороженое — Ice\\-cream\n") {
		t.Fatalf("expected escaped second line, got %q", got)
	}
}

func TestWordAddedText(t *testing.T) {
	if got := WordAddedText("Кот", 3); got != "Слово 'Кот' добавлено!\nВы изучаете 3 персональных слов." {
		t.Fatalf("unexpected text: %q", got)
	}
}
