package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the string UUID primary key shared by every ledger table.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"precision:3;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"precision:3" json:"updatedAt"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// All lists every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Activity{},
		&Reward{},
		&Redemption{},
		&Transaction{},
		&Event{},
		&EventParticipation{},
		&Notification{},
	}
}
