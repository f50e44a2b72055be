package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	CreateUser(ctx context.Context, db *gorm.DB, user *User) error
	FindUserByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*User, error)
	FindUserByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindUserByGoogleID(ctx context.Context, db *gorm.DB, googleID string) (*User, error)
	UpdateUser(ctx context.Context, db *gorm.DB, user *User) error

	CreateSession(ctx context.Context, db *gorm.DB, session *Session) error
	FindSession(ctx context.Context, db *gorm.DB, token string) (*Session, error)
	DeleteSession(ctx context.Context, db *gorm.DB, token string) error
	DeleteExpiredSessions(ctx context.Context, db *gorm.DB, before time.Time) error
}
