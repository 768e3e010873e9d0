package vocabulary

import "context"

// NewWord is a word row to be created together with its translation.
type NewWord struct {
	Russian    string
	English    string
	RussianKey string
	LookupKey  string
	IsCommon   bool
}

// Store is the persistence boundary of the vocabulary service. Every method
// is a single named query; multi-step rules are composed by the service
// inside Transaction.
type Store interface {
	EnsureUser(ctx context.Context, userID int64) error

	ListTrainingWords(ctx context.Context, userID int64) ([]WordCard, error)
	ListPersonalWords(ctx context.Context, userID int64) ([]WordCard, error)

	// FindWordByKey resolves a word by its joint Russian/English lookup key.
	FindWordByKey(ctx context.Context, lookupKey string) (uint, bool, error)
	// CreateWord inserts a word and its translation. When another word with
	// the same lookup key already exists, its id is returned instead.
	CreateWord(ctx context.Context, word NewWord) (uint, error)
	MarkCommon(ctx context.Context, wordID uint) error
	CountCommonWords(ctx context.Context) (int64, error)

	HasAssociation(ctx context.Context, userID int64, wordID uint) (bool, error)
	// CreateAssociation reports false when the link already exists.
	CreateAssociation(ctx context.Context, userID int64, wordID uint) (bool, error)
	CountAssociations(ctx context.Context, userID int64) (int, error)
	// DeleteAssociationByRussian removes one of the user's links to a word
	// whose folded Russian text equals russianKey. Word rows are never touched.
	DeleteAssociationByRussian(ctx context.Context, userID int64, russianKey string) (bool, error)

	// Transaction runs fn against a store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
