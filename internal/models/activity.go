package models

import (
	"time"

	"gorm.io/datatypes"
)

type Activity struct {
	Base
	UserID     string         `gorm:"type:varchar(36);index;not null" json:"userId"`
	Type       ActivityType   `gorm:"type:varchar(40);index;not null" json:"type"`
	Points     int64          `gorm:"not null" json:"points"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
	VerifiedAt *time.Time     `gorm:"index" json:"verifiedAt"`

	User *User `json:"user,omitempty"`
}
