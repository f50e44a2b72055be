// Package domain contains persistence models for authentication.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

type User struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	Email        string       `gorm:"type:text;not null;uniqueIndex:ux_users_email" json:"email"`
	Name         string       `gorm:"type:text;not null" json:"name"`
	AvatarURL    string       `gorm:"column:avatar_url;type:text;not null;default:''" json:"avatar_url"`
	Provider     AuthProvider `gorm:"type:text;not null;default:'local'" json:"provider"`
	GoogleID     string       `gorm:"column:google_id;type:text;not null;default:''" json:"-"`
	PasswordHash string       `gorm:"column:password_hash;type:text;not null;default:''" json:"-"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session is an opaque-token server-side session. Token is stored as the
// primary key and handed to the client in a cookie.
type Session struct {
	Token     string       `gorm:"primaryKey;type:text" json:"-"`
	UserID    snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	UserAgent string       `gorm:"column:user_agent;type:text;not null;default:''" json:"user_agent"`
	IP        string       `gorm:"type:text;not null;default:''" json:"ip"`
	ExpiresAt time.Time    `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }

// GoogleProfile is the subset of the OIDC userinfo payload consumed at
// sign-in.
type GoogleProfile struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
