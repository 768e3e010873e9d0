// Package quiz builds multiple-choice questions from a word pool and checks
// answers. It holds no per-user state.
package quiz

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
)

const (
	// MinPoolSize is the smallest pool a question can be drawn from.
	MinPoolSize = 4
	// OptionCount is the number of answer options per question.
	OptionCount = 4
)

// ErrInsufficientData is returned when the pool has fewer than MinPoolSize words.
var ErrInsufficientData = errors.New("quiz: not enough words for a question")

// Exit tokens end a quiz from any question.
const (
	ExitMenuText = "Выйти в меню 🏠"
	StartCommand = "/start"
)

// Question is a single prompt: translate Target.Russian, picking from Options.
type Question struct {
	Target  vocabulary.WordCard
	Options []string
}

// Correct returns the expected answer.
func (q Question) Correct() string {
	return q.Target.English
}

var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// PickQuestion draws a fresh question from pool using the shared random source.
func PickQuestion(pool []vocabulary.WordCard) (Question, error) {
	rngMu.Lock()
	defer rngMu.Unlock()
	return PickQuestionWith(rng, pool)
}

// PickQuestionWith draws a question using r. The target is chosen uniformly,
// then OptionCount-1 distractors are drawn without replacement from the other
// cards (by id, so a shared English text may appear twice). Options come back
// shuffled.
func PickQuestionWith(r *rand.Rand, pool []vocabulary.WordCard) (Question, error) {
	if len(pool) < MinPoolSize {
		return Question{}, ErrInsufficientData
	}

	target := pool[r.Intn(len(pool))]
	others := lo.Filter(pool, func(card vocabulary.WordCard, _ int) bool {
		return card.ID != target.ID
	})
	if len(others) < OptionCount-1 {
		return Question{}, ErrInsufficientData
	}
	picked := make([]vocabulary.WordCard, 0, OptionCount-1)
	for _, i := range r.Perm(len(others))[:OptionCount-1] {
		picked = append(picked, others[i])
	}

	options := append(lo.Map(picked, func(card vocabulary.WordCard, _ int) string {
		return card.English
	}), target.English)
	r.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return Question{Target: target, Options: options}, nil
}

// CheckAnswer reports whether submitted matches correct after normalization.
// An empty submission never matches.
func CheckAnswer(submitted, correct string) bool {
	got := vocabulary.Normalize(submitted)
	if got == "" {
		return false
	}
	return got == vocabulary.Normalize(correct)
}

// IsExitToken reports whether text leaves the quiz.
func IsExitToken(text string) bool {
	switch text {
	case ExitMenuText, StartCommand:
		return true
	}
	return false
}
