package models

type Reward struct {
	Base
	Name        string `gorm:"type:varchar(200);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Cost        int64  `gorm:"not null" json:"cost"`
	Stock       int64  `gorm:"not null;default:0;check:chk_rewards_stock,stock >= 0" json:"stock"`
	Category    string `gorm:"type:varchar(50);index" json:"category"`
	ImageURL    string `gorm:"type:varchar(500)" json:"imageUrl"`
	IsActive    bool   `gorm:"not null;index" json:"isActive"`
}
