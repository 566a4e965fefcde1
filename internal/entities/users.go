package entities

import "time"

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"not null;size:100" json:"name"`
	Email          string    `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordDigest string    `gorm:"column:password;not null" json:"-"`
	Division       string    `gorm:"not null;size:100" json:"division"`
	CreatedAt      time.Time `json:"created_at"`
}

// RequiredUserColumns lists the columns the users table must carry.
var RequiredUserColumns = []string{"id", "name", "email", "password", "division", "created_at"}
