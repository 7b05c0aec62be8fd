package models

import (
	"time"

	"gorm.io/gorm"
)

// LoginToken records every issued JWT; deleting the row revokes the token.
type LoginToken struct {
	gorm.Model
	Token          string `gorm:"index"`
	ExpirationTime time.Time
	UserID         uint
	Role           string
}
