package models

import "time"

type User struct {
	Base

	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
}

// Session is one signed-in device; its ID is the token's jti.
type Session struct {
	Base

	UserID    string     `json:"user_id" gorm:"type:char(36);index;not null"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	UserAgent string     `json:"user_agent,omitempty" gorm:"type:varchar(255)"`
	IP        string     `json:"ip,omitempty" gorm:"type:varchar(64)"`
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
