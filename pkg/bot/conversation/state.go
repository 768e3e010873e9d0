// Package conversation keeps the per-user pending-input state of the chat
// front end: what the bot expects the user to send next.
package conversation

import (
	"context"
	"fmt"
)

// Kind tags a State.
type Kind string

const (
	KindIdle                 Kind = "idle"
	KindAwaitingWord         Kind = "awaiting_word"
	KindAwaitingTranslation  Kind = "awaiting_translation"
	KindAwaitingQuizAnswer   Kind = "awaiting_quiz_answer"
	KindAwaitingDeleteChoice Kind = "awaiting_delete_choice"
)

// State is a small tagged variant. Russian is set for AwaitingTranslation
// (the word being added) and AwaitingQuizAnswer (the word being asked);
// Correct is set only for AwaitingQuizAnswer.
type State struct {
	Kind    Kind
	Russian string
	Correct string
}

func Idle() State { return State{Kind: KindIdle} }

func AwaitingWord() State { return State{Kind: KindAwaitingWord} }

func AwaitingTranslation(russian string) State {
	return State{Kind: KindAwaitingTranslation, Russian: russian}
}

func AwaitingQuizAnswer(russian, correct string) State {
	return State{Kind: KindAwaitingQuizAnswer, Russian: russian, Correct: correct}
}

func AwaitingDeleteChoice() State { return State{Kind: KindAwaitingDeleteChoice} }

func (s State) IsIdle() bool {
	return s.Kind == "" || s.Kind == KindIdle
}

// Validate rejects states missing the payload their kind requires.
func (s State) Validate() error {
	switch s.Kind {
	case "", KindIdle, KindAwaitingWord, KindAwaitingDeleteChoice:
		return nil
	case KindAwaitingTranslation:
		if s.Russian == "" {
			return fmt.Errorf("conversation: %s requires a russian word", s.Kind)
		}
		return nil
	case KindAwaitingQuizAnswer:
		if s.Correct == "" {
			return fmt.Errorf("conversation: %s requires a correct answer", s.Kind)
		}
		return nil
	default:
		return fmt.Errorf("conversation: unknown state kind %q", s.Kind)
	}
}

// StateStore persists one State per user. Load returns Idle for a user
// with nothing stored; saving an idle state is the same as Clear.
type StateStore interface {
	Load(ctx context.Context, userID int64) (State, error)
	Save(ctx context.Context, userID int64, state State) error
	Clear(ctx context.Context, userID int64) error
}
