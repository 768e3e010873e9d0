// pkg/db/models.go
package db

import (
	"time"

	"gorm.io/datatypes"
)

// User is a chat identity. The id is the Telegram chat id.
type User struct {
	ID        int64 `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time
	Words     []UserWord `gorm:"constraint:OnDelete:CASCADE"`
}

type Word struct {
	ID          uint   `gorm:"primaryKey"`
	Russian     string `gorm:"size:100;not null"`
	RussianKey  string `gorm:"size:255;not null;index"`
	LookupKey   string `gorm:"size:512;not null;uniqueIndex"` // folded russian + folded english
	IsCommon    bool   `gorm:"not null;default:false;index"`
	CreatedAt   time.Time
	Translation *Translation `gorm:"constraint:OnDelete:CASCADE"`
}

type Translation struct {
	ID      uint   `gorm:"primaryKey"`
	WordID  uint   `gorm:"not null;uniqueIndex"`
	English string `gorm:"size:100;not null"`
}

// UserWord puts a word into a user's training set.
type UserWord struct {
	ID        uint  `gorm:"primaryKey"`
	UserID    int64 `gorm:"not null;uniqueIndex:idx_user_word"`
	WordID    uint  `gorm:"not null;uniqueIndex:idx_user_word;index"`
	Word      Word  `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
}

// ConversationState is the pending-input state of one user's chat.
type ConversationState struct {
	UserID    int64          `gorm:"primaryKey;autoIncrement:false"`
	Kind      string         `gorm:"size:32;not null"`
	Payload   datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

// Models lists every table managed by Migrate.
func Models() []any {
	return []any{&User{}, &Word{}, &Translation{}, &UserWord{}, &ConversationState{}}
}
