package store

import (
	"encoding/json"
	"errors"

	"github.com/zt6453928/lunatv-enhanced/config"
	"github.com/zt6453928/lunatv-enhanced/database/dbcore"
	"github.com/zt6453928/lunatv-enhanced/database/models"
	"gorm.io/gorm"
)

// GormStore is the database-backed config.Store. The document lives in a
// single JSON row; usernames and per-user profiles come from the users
// table. Reads and writes are individually atomic, concurrent document
// saves are last-write-wins.
type GormStore struct{}

func New() *GormStore {
	return &GormStore{}
}

// LoadDocument returns the persisted document, or nil when none has been
// saved yet.
func (s *GormStore) LoadDocument() (*config.AdminConfig, error) {
	db := dbcore.GetDBInstance()
	var row models.ConfigDocument
	if err := db.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if row.Data == "" {
		return nil, nil
	}
	var cfg config.AdminConfig
	if err := json.Unmarshal([]byte(row.Data), &cfg); err != nil {
		// A corrupt row is treated like a missing one so the caller
		// reinitializes instead of failing every request.
		return nil, nil
	}
	return &cfg, nil
}

func (s *GormStore) SaveDocument(cfg *config.AdminConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	db := dbcore.GetDBInstance()
	row := models.ConfigDocument{ID: 1, Data: string(data)}
	// Only one record
	return db.Save(&row).Error
}

func (s *GormStore) ListUsernames() ([]string, error) {
	db := dbcore.GetDBInstance()
	var usernames []string
	if err := db.Model(&models.User{}).Order("created_at").Pluck("username", &usernames).Error; err != nil {
		return nil, err
	}
	return usernames, nil
}

func (s *GormStore) LoadUserProfile(username string) (*config.UserProfile, error) {
	db := dbcore.GetDBInstance()
	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	profile := &config.UserProfile{
		CreatedAt: user.CreatedAt.UnixMilli(),
		OidcSub:   user.OidcSub,
		Role:      user.Role,
		Banned:    user.Banned,
	}
	if user.Tags != "" {
		if err := json.Unmarshal([]byte(user.Tags), &profile.Tags); err != nil {
			profile.Tags = nil
		}
	}
	if user.EnabledAPIs != "" {
		if err := json.Unmarshal([]byte(user.EnabledAPIs), &profile.EnabledAPIs); err != nil {
			profile.EnabledAPIs = nil
		}
	}
	return profile, nil
}
