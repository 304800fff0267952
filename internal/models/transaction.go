package models

type Transaction struct {
	Base
	UserID       string            `gorm:"type:varchar(36);index;not null" json:"userId"`
	Amount       int64             `gorm:"not null" json:"amount"`
	Type         TransactionType   `gorm:"type:varchar(20);index;not null" json:"type"`
	Description  string            `gorm:"type:text" json:"description"`
	TxHash       string            `gorm:"type:varchar(66);index" json:"txHash,omitempty"`
	Status       TransactionStatus `gorm:"type:varchar(20);index;not null;default:'PENDING'" json:"status"`
	RedemptionID *string           `gorm:"type:varchar(36);index" json:"redemptionId,omitempty"`

	User *User `json:"user,omitempty"`
}
