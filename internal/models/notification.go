package models

type Notification struct {
	Base
	UserID  string           `gorm:"type:varchar(36);index;not null" json:"userId"`
	Title   string           `gorm:"type:varchar(200);not null" json:"title"`
	Message string           `gorm:"type:text" json:"message"`
	Type    NotificationType `gorm:"type:varchar(20);not null;default:'INFO'" json:"type"`
	IsRead  bool             `gorm:"not null;default:false;index" json:"isRead"`
	Link    string           `gorm:"type:varchar(255)" json:"link,omitempty"`
}
