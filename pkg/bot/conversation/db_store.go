package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/smith3v/tg-vocab-trainer/pkg/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type persistedPayload struct {
	Russian string `json:"russian,omitempty"`
	Correct string `json:"correct,omitempty"`
}

// DBStore keeps states in the conversation_states table so a pending
// question survives a restart.
type DBStore struct {
	db  *gorm.DB
	now func() time.Time
}

var _ StateStore = (*DBStore)(nil)

func NewDBStore(gdb *gorm.DB) (*DBStore, error) {
	if gdb == nil {
		return nil, errors.New("conversation: database connection required")
	}
	return &DBStore{db: gdb, now: time.Now}, nil
}

func (s *DBStore) Load(ctx context.Context, userID int64) (State, error) {
	var row db.ConversationState
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Idle(), nil
	}
	if err != nil {
		return State{}, err
	}

	var payload persistedPayload
	if len(row.Payload) > 0 {
		if err := json.Unmarshal(row.Payload, &payload); err != nil {
			return State{}, err
		}
	}
	state := State{Kind: Kind(row.Kind), Russian: payload.Russian, Correct: payload.Correct}
	if err := state.Validate(); err != nil {
		return State{}, err
	}
	return state, nil
}

func (s *DBStore) Save(ctx context.Context, userID int64, state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	if state.IsIdle() {
		return s.Clear(ctx, userID)
	}
	raw, err := json.Marshal(persistedPayload{Russian: state.Russian, Correct: state.Correct})
	if err != nil {
		return err
	}
	row := db.ConversationState{
		UserID:    userID,
		Kind:      string(state.Kind),
		Payload:   datatypes.JSON(raw),
		UpdatedAt: s.now().UTC(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "payload", "updated_at"}),
	}).Create(&row).Error
}

func (s *DBStore) Clear(ctx context.Context, userID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&db.ConversationState{}).Error
}
