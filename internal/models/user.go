package models

type User struct {
	Base
	WalletAddress    string     `gorm:"type:varchar(42);uniqueIndex;not null" json:"walletAddress"`
	Name             string     `gorm:"type:varchar(100)" json:"name"`
	Email            string     `gorm:"type:varchar(255)" json:"email"`
	CollegeEmail     string     `gorm:"type:varchar(255)" json:"collegeEmail"`
	RollNo           string     `gorm:"type:varchar(50)" json:"rollNo"`
	Year             string     `gorm:"type:varchar(20)" json:"year"`
	Branch           string     `gorm:"type:varchar(100)" json:"branch"`
	CodeforcesHandle string     `gorm:"type:varchar(50)" json:"codeforcesHandle"`
	Role             Role       `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	Status           UserStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Version          int        `gorm:"default:1" json:"-"`

	Activities   []Activity    `json:"activities,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}
