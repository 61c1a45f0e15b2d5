package config

// orderedMap is an insertion-order-preserving map used for the keyed merge
// of each collection. Existing entries keep their position; new keys are
// appended, so the merged result is stable across runs.
type orderedMap[V any] struct {
	keys  []string
	items map[string]V
}

func newOrderedMap[V any]() *orderedMap[V] {
	return &orderedMap[V]{items: make(map[string]V)}
}

func (m *orderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *orderedMap[V]) Set(key string, value V) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = value
}

func (m *orderedMap[V]) Delete(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m *orderedMap[V]) Values() []V {
	out := make([]V, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

func categoryKey(query, typ string) string {
	return query + typ
}

// Reconcile merges a parsed subscription into the document. The same keyed
// strategy applies to sources, custom categories and live channels:
//
//  1. entries whose provenance is the subscription and whose key no longer
//     appears upstream are pruned; admin-created entries are never pruned,
//  2. entries present upstream are upserted, overwriting only the fields
//     the subscription owns (name, endpoint, detail/epg/ua) and leaving
//     admin-set fields (disabled, is_adult, type, from, channelNumber)
//     untouched,
//  3. new entries are inserted after the existing ones, in file order.
//
// Applying the same subscription twice yields no further change.
func Reconcile(cfg *AdminConfig, sub ParsedSubscription) *AdminConfig {
	mergeSources(cfg, sub.APISites)
	mergeCategories(cfg, sub.Categories)
	mergeLives(cfg, sub.Lives)
	return cfg
}

func mergeSources(cfg *AdminConfig, entries []APISiteEntry) {
	current := newOrderedMap[SourceConfig]()
	for _, s := range cfg.SourceConfig {
		current.Set(s.Key, s)
	}

	inFile := make(map[string]bool, len(entries))
	for _, e := range entries {
		inFile[e.Key] = true
	}
	for _, s := range cfg.SourceConfig {
		if s.From == FromConfig && !inFile[s.Key] {
			current.Delete(s.Key)
		}
	}

	for _, e := range entries {
		if existing, ok := current.Get(e.Key); ok {
			existing.Name = e.Name
			existing.API = e.API
			existing.Detail = e.Detail
			current.Set(e.Key, existing)
			continue
		}
		current.Set(e.Key, SourceConfig{
			Key:      e.Key,
			Name:     e.Name,
			API:      e.API,
			Detail:   e.Detail,
			From:     FromConfig,
			Disabled: false,
			Type:     "vod",
		})
	}

	cfg.SourceConfig = current.Values()
}

func mergeCategories(cfg *AdminConfig, entries []CategoryEntry) {
	current := newOrderedMap[CustomCategory]()
	for _, c := range cfg.CustomCategories {
		current.Set(categoryKey(c.Query, c.Type), c)
	}

	inFile := make(map[string]bool, len(entries))
	for _, e := range entries {
		inFile[categoryKey(e.Query, e.Type)] = true
	}
	for _, c := range cfg.CustomCategories {
		key := categoryKey(c.Query, c.Type)
		if c.From == FromConfig && !inFile[key] {
			current.Delete(key)
		}
	}

	for _, e := range entries {
		key := categoryKey(e.Query, e.Type)
		if existing, ok := current.Get(key); ok {
			existing.Name = e.Name
			existing.Query = e.Query
			existing.Type = e.Type
			current.Set(key, existing)
			continue
		}
		name := e.Name
		if name == "" {
			name = e.Query
		}
		current.Set(key, CustomCategory{
			Name:     name,
			Type:     e.Type,
			Query:    e.Query,
			From:     FromConfig,
			Disabled: false,
		})
	}

	cfg.CustomCategories = current.Values()
}

func mergeLives(cfg *AdminConfig, entries []LiveEntry) {
	current := newOrderedMap[LiveConfig]()
	for _, l := range cfg.LiveConfig {
		current.Set(l.Key, l)
	}

	inFile := make(map[string]bool, len(entries))
	for _, e := range entries {
		inFile[e.Key] = true
	}
	for _, l := range cfg.LiveConfig {
		if l.From == FromConfig && !inFile[l.Key] {
			current.Delete(l.Key)
		}
	}

	for _, e := range entries {
		if existing, ok := current.Get(e.Key); ok {
			existing.Name = e.Name
			existing.URL = e.URL
			existing.UA = e.UA
			existing.EPG = e.EPG
			current.Set(e.Key, existing)
			continue
		}
		current.Set(e.Key, LiveConfig{
			Key:           e.Key,
			Name:          e.Name,
			URL:           e.URL,
			UA:            e.UA,
			EPG:           e.EPG,
			IsTVBox:       e.IsTVBox,
			ChannelNumber: 0,
			From:          FromConfig,
			Disabled:      false,
		})
	}

	cfg.LiveConfig = current.Values()
}
