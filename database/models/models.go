package models

import (
	"time"
)

// User represents a registered account. The users table is the
// authoritative username list; per-user preferences that the config
// document also carries (tags, enabled sources) are mirrored here so a
// freshly synthesized document entry can be seeded from them.
type User struct {
	UUID        string    `json:"uuid,omitempty" gorm:"type:uuid;primaryKey"`
	Username    string    `json:"username" gorm:"type:varchar(50);unique;not null"`
	Passwd      string    `json:"passwd,omitempty" gorm:"type:varchar(255);not null"` // Hashed password
	Role        string    `json:"role" gorm:"type:varchar(20);default:'user'"`        // owner, admin, user
	Banned      bool      `json:"banned" gorm:"default:false"`
	OidcSub     string    `json:"oidc_sub,omitempty" gorm:"type:varchar(100)"` // OIDC provider's subject id
	Tags        string    `json:"tags,omitempty" gorm:"type:longtext"`         // JSON array of tag names
	EnabledAPIs string    `json:"enabled_apis,omitempty" gorm:"type:longtext"` // JSON array of source/feature keys
	TwoFactor   string    `json:"-" gorm:"type:varchar(255)"`                  // TOTP secret, empty when disabled
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Session manages user sessions
type Session struct {
	UUID      string    `gorm:"type:uuid;foreignKey:UserUUID;references:UUID;constraint:OnDelete:CASCADE"`
	Session   string    `gorm:"type:varchar(255);unique;not null"`
	Expires   time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// ConfigDocument stores the admin config document as a single JSON row.
// There is only ever one record, ID 1.
type ConfigDocument struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"` // 1
	Data      string `gorm:"type:longtext"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
