package models

type Redemption struct {
	Base
	UserID    string           `gorm:"type:varchar(36);index;not null" json:"userId"`
	RewardID  string           `gorm:"type:varchar(36);index;not null" json:"rewardId"`
	Quantity  int64            `gorm:"not null" json:"quantity"`
	TotalCost int64            `gorm:"not null" json:"totalCost"`
	Status    RedemptionStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	TxHash    string           `gorm:"type:varchar(66)" json:"txHash,omitempty"`

	User   *User   `json:"user,omitempty"`
	Reward *Reward `json:"reward,omitempty"`
}
