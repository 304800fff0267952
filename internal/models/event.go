package models

import "time"

type Event struct {
	Base
	Title        string       `gorm:"type:varchar(200);not null" json:"title"`
	Description  string       `gorm:"type:text" json:"description"`
	Date         time.Time    `gorm:"index" json:"date"`
	Location     string       `gorm:"type:varchar(200)" json:"location"`
	Points       int64        `gorm:"not null;default:0" json:"points"`
	ActivityType ActivityType `gorm:"type:varchar(40);not null;default:'EVENT_ATTENDANCE'" json:"activityType"`
	TotalSlots   int64        `gorm:"not null;default:0" json:"totalSlots"`
	IsActive     bool         `gorm:"not null;index" json:"isActive"`
}

type EventParticipation struct {
	Base
	UserID        string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_participation_user_event" json:"userId"`
	EventID       string              `gorm:"type:varchar(36);not null;uniqueIndex:idx_participation_user_event;index" json:"eventId"`
	Status        ParticipationStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	DistributedAt *time.Time          `json:"distributedAt"`
	TxHash        string              `gorm:"type:varchar(66)" json:"txHash,omitempty"`

	User  *User  `json:"user,omitempty"`
	Event *Event `json:"event,omitempty"`
}
