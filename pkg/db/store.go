package db

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/smith3v/tg-vocab-trainer/pkg/vocabulary"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the gorm implementation of vocabulary.Store.
type Store struct {
	db *gorm.DB
}

var _ vocabulary.Store = (*Store)(nil)

func NewStore(gdb *gorm.DB) (*Store, error) {
	if gdb == nil {
		return nil, errors.New("db: database connection required")
	}
	return &Store{db: gdb}, nil
}

type wordCardRow struct {
	ID       uint
	Russian  string
	English  string
	IsCommon bool
}

func (s *Store) EnsureUser(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&User{ID: userID}).Error
}

func (s *Store) ListTrainingWords(ctx context.Context, userID int64) ([]vocabulary.WordCard, error) {
	var rows []wordCardRow
	err := s.wordCards(ctx).
		Joins("LEFT JOIN user_words ON user_words.word_id = words.id AND user_words.user_id = ?", userID).
		Where("words.is_common = ? OR user_words.id IS NOT NULL", true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCards(rows), nil
}

func (s *Store) ListPersonalWords(ctx context.Context, userID int64) ([]vocabulary.WordCard, error) {
	var rows []wordCardRow
	err := s.wordCards(ctx).
		Joins("JOIN user_words ON user_words.word_id = words.id AND user_words.user_id = ?", userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toCards(rows), nil
}

// wordCards selects words joined with their translation; a word without a
// translation row drops out of the inner join.
func (s *Store) wordCards(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("words").
		Select("words.id, words.russian, translations.english, words.is_common").
		Joins("JOIN translations ON translations.word_id = words.id").
		Order("words.id")
}

func toCards(rows []wordCardRow) []vocabulary.WordCard {
	return lo.Map(rows, func(row wordCardRow, _ int) vocabulary.WordCard {
		return vocabulary.WordCard{
			ID:       row.ID,
			Russian:  row.Russian,
			English:  row.English,
			IsCommon: row.IsCommon,
		}
	})
}

func (s *Store) FindWordByKey(ctx context.Context, lookupKey string) (uint, bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&Word{}).
		Where("lookup_key = ?", lookupKey).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, false, err
	}
	if len(ids) == 0 {
		return 0, false, nil
	}
	return ids[0], true, nil
}

func (s *Store) CreateWord(ctx context.Context, word vocabulary.NewWord) (uint, error) {
	row := Word{
		Russian:    word.Russian,
		RussianKey: word.RussianKey,
		LookupKey:  word.LookupKey,
		IsCommon:   word.IsCommon,
	}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lookup_key"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(&row)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		// another writer created the same pair first
		id, found, err := s.FindWordByKey(ctx, word.LookupKey)
		if err != nil {
			return 0, err
		}
		if !found {
			return 0, errors.New("db: word vanished after insert conflict")
		}
		return id, nil
	}

	translation := Translation{WordID: row.ID, English: word.English}
	if err := s.db.WithContext(ctx).Create(&translation).Error; err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (s *Store) MarkCommon(ctx context.Context, wordID uint) error {
	return s.db.WithContext(ctx).
		Model(&Word{}).
		Where("id = ?", wordID).
		Update("is_common", true).Error
}

func (s *Store) CountCommonWords(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&Word{}).Where("is_common = ?", true).Count(&count).Error
	return count, err
}

func (s *Store) HasAssociation(ctx context.Context, userID int64, wordID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&UserWord{}).
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Count(&count).Error
	return count > 0, err
}

func (s *Store) CreateAssociation(ctx context.Context, userID int64, wordID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoNothing: true,
		}).
		Omit(clause.Associations).
		Create(&UserWord{UserID: userID, WordID: wordID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) CountAssociations(ctx context.Context, userID int64) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&UserWord{}).Where("user_id = ?", userID).Count(&count).Error
	return int(count), err
}

func (s *Store) DeleteAssociationByRussian(ctx context.Context, userID int64, russianKey string) (bool, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&UserWord{}).
		Joins("JOIN words ON words.id = user_words.word_id").
		Where("user_words.user_id = ? AND words.russian_key = ?", userID, russianKey).
		Order("user_words.id").
		Limit(1).
		Pluck("user_words.id", &ids).Error
	if err != nil {
		return false, err
	}
	if len(ids) == 0 {
		return false, nil
	}
	res := s.db.WithContext(ctx).Delete(&UserWord{}, ids[0])
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) Transaction(ctx context.Context, fn func(tx vocabulary.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
