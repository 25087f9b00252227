package models

import "time"

// User represents an account in the system.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100)" json:"firstName,omitempty"`
	LastName     string `gorm:"type:varchar(100)" json:"lastName,omitempty"`
	Bio          string `gorm:"type:text" json:"bio,omitempty"`

	// Profile images are opaque URL references; upload handling lives
	// outside this service.
	ProfilePicture string `gorm:"type:varchar(255)" json:"profilePicture,omitempty"`
	CoverPhoto     string `gorm:"type:varchar(255)" json:"coverPhoto,omitempty"`

	IsPrivate bool `gorm:"default:false" json:"isPrivate"`

	// FriendsCount is denormalized and must only be adjusted inside the same
	// transaction that accepts or removes a friendship.
	FriendsCount int `gorm:"default:0" json:"friendsCount"`

	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

// UserBasicInfo holds minimal public information about a user.
// Used wherever a stored user reference is resolved for display
// (friend lists, conversation partners, post authors).
type UserBasicInfo struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FirstName      string `json:"firstName,omitempty"`
	LastName       string `json:"lastName,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
