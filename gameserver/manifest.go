package gameserver

// Manifest mirrors one of the content files the game server loads on
// boot (items, npcs, resources, buildings). On the wire a manifest is a
// plain json array of entries, the name comes from the file name.
type Manifest struct {
	Name    string          `json:"name"`
	Entries []ManifestEntry `json:"entries"`
}

// ManifestInfo is the listing row for a manifest, Source is "local" or
// the game server url.
type ManifestInfo struct {
	Name       string `json:"name"`
	AssetCount int    `json:"asset_count"`
	Source     string `json:"source"`
}

type ManifestEntry struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Category    string                 `json:"category,omitempty"`
	Description string                 `json:"description,omitempty"`
	ModelURL    string                 `json:"model_url,omitempty"`
	IconURL     string                 `json:"icon_url,omitempty"`
	Stats       map[string]interface{} `json:"stats,omitempty"`
	Drops       []DropRef              `json:"drops,omitempty"`
	Sells       []string               `json:"sells,omitempty"`
	Yields      []string               `json:"yields,omitempty"`
	CraftsFrom  []string               `json:"crafts_from,omitempty"`
}

type DropRef struct {
	ItemID string  `json:"item_id"`
	Chance float64 `json:"chance,omitempty"`
}

// clone copies the manifest with a fresh entries slice so callers can
// upsert without mutating cached state.
func (m *Manifest) clone() *Manifest {
	entries := make([]ManifestEntry, len(m.Entries))
	copy(entries, m.Entries)
	return &Manifest{Name: m.Name, Entries: entries}
}

// Entry returns the entry with the given id, or nil.
func (m *Manifest) Entry(id string) *ManifestEntry {
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			return &m.Entries[i]
		}
	}
	return nil
}

// Upsert replaces the entry with the same id or appends a new one.
// It reports whether an existing entry was replaced.
func (m *Manifest) Upsert(entry ManifestEntry) bool {
	for i := range m.Entries {
		if m.Entries[i].ID == entry.ID {
			m.Entries[i] = entry
			return true
		}
	}
	m.Entries = append(m.Entries, entry)
	return false
}
