package models

import "gorm.io/gorm"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	gorm.Model
	Name     string `gorm:"not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null" json:"-"`
	Address  string
	Phone    string
	Role     string `gorm:"not null;default:user"`
	Blocked  bool   `gorm:"not null;default:false"`

	Cart        Cart
	Orders      []Order
	LoginTokens []LoginToken
}
