package config

import "errors"

// memStore is the in-memory Store used across the package tests.
type memStore struct {
	doc       *AdminConfig
	usernames []string
	profiles  map[string]*UserProfile
	failList  bool
	failLoad  bool
}

func (m *memStore) LoadDocument() (*AdminConfig, error) {
	if m.failLoad {
		return nil, errors.New("store unavailable")
	}
	return m.doc, nil
}

func (m *memStore) SaveDocument(cfg *AdminConfig) error {
	m.doc = cfg
	return nil
}

func (m *memStore) ListUsernames() ([]string, error) {
	if m.failList {
		return nil, errors.New("store unavailable")
	}
	return m.usernames, nil
}

func (m *memStore) LoadUserProfile(username string) (*UserProfile, error) {
	if m.profiles == nil {
		return nil, nil
	}
	return m.profiles[username], nil
}
