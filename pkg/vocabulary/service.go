package vocabulary

import (
	"context"
	"errors"

	"github.com/smith3v/tg-vocab-trainer/pkg/logger"
)

// Service applies the vocabulary rules on top of a Store. It keeps no state
// of its own and is safe for concurrent use when the Store is.
type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("vocabulary: store required")
	}
	return &Service{store: store}, nil
}

// Initialize seeds CommonSet when the store has no common word yet. It returns
// the number of words seeded, which is zero on every run after the first.
func (s *Service) Initialize(ctx context.Context) (int, error) {
	seeded := 0
	err := s.store.Transaction(ctx, func(tx Store) error {
		existing, err := tx.CountCommonWords(ctx)
		if err != nil {
			return err
		}
		if existing > 0 {
			return nil
		}
		for _, pair := range CommonSet {
			id, err := tx.CreateWord(ctx, NewWord{
				Russian:    pair.Russian,
				English:    pair.English,
				RussianKey: Normalize(pair.Russian),
				LookupKey:  LookupKey(pair.Russian, pair.English),
				IsCommon:   true,
			})
			if err != nil {
				return err
			}
			// a user may have added the pair before the first seed
			if err := tx.MarkCommon(ctx, id); err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return 0, storageFault("initialize", err)
	}
	if seeded > 0 {
		logger.Info("seeded common vocabulary", "words", seeded)
	}
	return seeded, nil
}

// EnsureUser records userID. Repeated calls are no-ops.
func (s *Service) EnsureUser(ctx context.Context, userID int64) error {
	return storageFault("ensure user", s.store.EnsureUser(ctx, userID))
}

// TrainingWords lists the common words plus every word the user has linked.
// Order is not part of the contract.
func (s *Service) TrainingWords(ctx context.Context, userID int64) ([]WordCard, error) {
	cards, err := s.store.ListTrainingWords(ctx, userID)
	if err != nil {
		return nil, storageFault("list training words", err)
	}
	return cards, nil
}

// PersonalWords lists only the words the user has linked, common or not.
func (s *Service) PersonalWords(ctx context.Context, userID int64) ([]WordCard, error) {
	cards, err := s.store.ListPersonalWords(ctx, userID)
	if err != nil {
		return nil, storageFault("list personal words", err)
	}
	return cards, nil
}

// AddPersonalWord links the (russian, english) pair to the user, reusing an
// existing word when both texts match after normalization. A pair the user
// already has is reported with Added false.
func (s *Service) AddPersonalWord(ctx context.Context, userID int64, russian, english string) (AddResult, error) {
	input, err := validatePair(russian, english)
	if err != nil {
		return AddResult{}, err
	}

	var result AddResult
	err = s.store.Transaction(ctx, func(tx Store) error {
		if err := tx.EnsureUser(ctx, userID); err != nil {
			return err
		}

		key := LookupKey(input.Russian, input.English)
		wordID, found, err := tx.FindWordByKey(ctx, key)
		if err != nil {
			return err
		}
		if !found {
			wordID, err = tx.CreateWord(ctx, NewWord{
				Russian:    input.Russian,
				English:    input.English,
				RussianKey: Normalize(input.Russian),
				LookupKey:  key,
			})
			if err != nil {
				return err
			}
		}

		linked, err := tx.HasAssociation(ctx, userID, wordID)
		if err != nil {
			return err
		}
		if !linked {
			result.Added, err = tx.CreateAssociation(ctx, userID, wordID)
			if err != nil {
				return err
			}
		}

		result.Count, err = tx.CountAssociations(ctx, userID)
		return err
	})
	if err != nil {
		return AddResult{}, storageFault("add personal word", err)
	}

	logger.Debug("personal word add", "user_id", userID, "added", result.Added, "count", result.Count)
	return result, nil
}

// DeletePersonalWord unlinks the user's word with the given Russian text,
// matched with Normalize. The word and its translation stay in the pool.
func (s *Service) DeletePersonalWord(ctx context.Context, userID int64, russian string) (bool, error) {
	text, err := validateRussian(russian)
	if err != nil {
		return false, err
	}

	var deleted bool
	err = s.store.Transaction(ctx, func(tx Store) error {
		var err error
		deleted, err = tx.DeleteAssociationByRussian(ctx, userID, Normalize(text))
		return err
	})
	if err != nil {
		return false, storageFault("delete personal word", err)
	}
	return deleted, nil
}
