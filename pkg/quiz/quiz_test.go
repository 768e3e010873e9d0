package quiz

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

func pool(n int) []vocabulary.WordCard {
	words := []vocabulary.WordCard{
		{ID: 1, Russian: "Красный", English: "Red"},
		{ID: 2, Russian: "Синий", English: "Blue"},
		{ID: 3, Russian: "Зеленый", English: "Green"},
		{ID: 4, Russian: "Собака", English: "Dog"},
		{ID: 5, Russian: "Кот", English: "Cat"},
		{ID: 6, Russian: "Дом", English: "House"},
	}
	return words[:n]
}

func TestPickQuestionExactPool(t *testing.T) {
	words := pool(4)
	r := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		q, err := PickQuestionWith(r, words)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(q.Options) != OptionCount {
			t.Fatalf("expected %d options, got %v", OptionCount, q.Options)
		}

		got := append([]string(nil), q.Options...)
		sort.Strings(got)
		want := []string{"Blue", "Dog", "Green", "Red"}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("expected every translation exactly once, got %v", q.Options)
			}
		}
		if q.Correct() != q.Target.English {
			t.Fatalf("expected correct answer to be the target translation")
		}
	}
}

func TestPickQuestionIncludesTargetOnce(t *testing.T) {
	words := pool(6)
	r := rand.New(rand.NewSource(7))

	seenTargets := make(map[uint]bool)
	for i := 0; i < 200; i++ {
		q, err := PickQuestionWith(r, words)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seenTargets[q.Target.ID] = true

		counts := make(map[string]int)
		for _, option := range q.Options {
			counts[option]++
		}
		if counts[q.Target.English] != 1 {
			t.Fatalf("expected target translation once, got %v", q.Options)
		}
		if len(counts) != OptionCount {
			t.Fatalf("expected distinct options, got %v", q.Options)
		}
	}
	if len(seenTargets) != len(words) {
		t.Fatalf("expected every word to be drawn as target eventually, saw %d", len(seenTargets))
	}
}

func TestPickQuestionAllowsSharedTranslation(t *testing.T) {
	words := []vocabulary.WordCard{
		{ID: 1, Russian: "Замок", English: "Lock"},
		{ID: 2, Russian: "Запирать", English: "Lock"},
		{ID: 3, Russian: "Ключ", English: "Key"},
		{ID: 4, Russian: "Дверь", English: "Door"},
	}
	q, err := PickQuestionWith(rand.New(rand.NewSource(3)), words)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Options) != OptionCount {
		t.Fatalf("expected %d options, got %v", OptionCount, q.Options)
	}
}

func TestPickQuestionInsufficientData(t *testing.T) {
	for _, n := range []int{0, 1, 3} {
		if _, err := PickQuestion(pool(n)); !errors.Is(err, ErrInsufficientData) {
			t.Fatalf("pool of %d: expected ErrInsufficientData, got %v", n, err)
		}
	}
}

func TestPickQuestionSharedSource(t *testing.T) {
	q, err := PickQuestion(pool(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(q.Options) != OptionCount {
		t.Fatalf("expected %d options, got %v", OptionCount, q.Options)
	}
}

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{"  Red ", "red", true},
		{"Blue", "Green", false},
		{"ice  cream", "Ice cream", true},
		{"", "", false},
		{"   ", "Red", false},
		{"СОБАКА", "собака", true},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.submitted, tt.correct); got != tt.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tt.submitted, tt.correct, got, tt.want)
		}
	}
}

func TestIsExitToken(t *testing.T) {
	if !IsExitToken(ExitMenuText) || !IsExitToken("/start") {
		t.Fatalf("expected exit tokens to be recognized")
	}
	if IsExitToken("Red") || IsExitToken("выйти") {
		t.Fatalf("unexpected exit token match")
	}
}
