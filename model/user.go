package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Password     string    `json:"-"`
	Role         string    `gorm:"default:user" json:"role"`
	IsVerified   bool      `json:"is_verified"`
	OTP          string    `json:"-"`
	OTPExpiresAt time.Time `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
