package config

import (
	"bytes"
	"encoding/json"
)

// APISiteEntry is one api_site entry of the subscription file.
type APISiteEntry struct {
	Key    string
	Name   string
	API    string
	Detail string
}

// CategoryEntry is one custom_category entry of the subscription file.
type CategoryEntry struct {
	Name  string
	Type  string
	Query string
}

// LiveEntry is one lives entry of the subscription file.
type LiveEntry struct {
	Key     string
	Name    string
	URL     string
	UA      string
	EPG     string
	IsTVBox bool
}

// ParsedSubscription is the normalized view of a subscription payload.
// Collections keep the order of the file so merges stay deterministic.
type ParsedSubscription struct {
	CacheTime  int
	APISites   []APISiteEntry
	Categories []CategoryEntry
	Lives      []LiveEntry
}

type apiSiteJSON struct {
	Name   string `json:"name"`
	API    string `json:"api"`
	Detail string `json:"detail"`
}

type categoryJSON struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Query string `json:"query"`
}

type liveJSON struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	UA      string `json:"ua"`
	EPG     string `json:"epg"`
	IsTVBox bool   `json:"isTvBox"`
}

// ParseSubscription parses a raw subscription payload. Malformed input
// yields an empty ParsedSubscription rather than an error: a broken
// upstream file must never block the rest of reconciliation.
func ParseSubscription(raw string) ParsedSubscription {
	var sub ParsedSubscription
	if raw == "" {
		return sub
	}

	var file struct {
		CacheTime      int             `json:"cache_time"`
		APISite        json.RawMessage `json:"api_site"`
		CustomCategory []categoryJSON  `json:"custom_category"`
		Lives          json.RawMessage `json:"lives"`
	}
	if err := json.Unmarshal([]byte(raw), &file); err != nil {
		return ParsedSubscription{}
	}

	sub.CacheTime = file.CacheTime

	// api_site and lives are JSON objects keyed by source key. A plain map
	// would lose the file order, so walk the object token by token.
	_ = eachOrderedKey(file.APISite, func(key string, val json.RawMessage) {
		var site apiSiteJSON
		if err := json.Unmarshal(val, &site); err != nil {
			return
		}
		sub.APISites = append(sub.APISites, APISiteEntry{
			Key:    key,
			Name:   site.Name,
			API:    site.API,
			Detail: site.Detail,
		})
	})

	for _, c := range file.CustomCategory {
		if c.Query == "" {
			continue
		}
		sub.Categories = append(sub.Categories, CategoryEntry{
			Name:  c.Name,
			Type:  c.Type,
			Query: c.Query,
		})
	}

	_ = eachOrderedKey(file.Lives, func(key string, val json.RawMessage) {
		var live liveJSON
		if err := json.Unmarshal(val, &live); err != nil {
			return
		}
		sub.Lives = append(sub.Lives, LiveEntry{
			Key:     key,
			Name:    live.Name,
			URL:     live.URL,
			UA:      live.UA,
			EPG:     live.EPG,
			IsTVBox: live.IsTVBox,
		})
	})

	return sub
}

// eachOrderedKey walks a JSON object and visits every key/value pair in
// file order. A missing or non-object value is treated as empty.
func eachOrderedKey(raw json.RawMessage, visit func(key string, val json.RawMessage)) error {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil
		}
		var val json.RawMessage
		if err := dec.Decode(&val); err != nil {
			return err
		}
		visit(key, val)
	}
	_, err = dec.Token() // closing brace
	return err
}
