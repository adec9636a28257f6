package models

import (
	"encoding/json"
	"strings"
)

// Keys added to every NormalizedProfile. They replace any member data field of the
// same name.
const (
	UniqueIDKey    = "uuid"
	DisplayNameKey = "username"
	ProfileIDKey   = "profile_id"
	CuteNameKey    = "cute_name"
)

// SelectionWeight marks the profile a member most recently selected as their active
// one. The API has sent both numbers and booleans for this field, true is read as 1
// and false as 0.
type SelectionWeight float64

// UnmarshalJSON accepts either a JSON number or a JSON boolean.
func (w *SelectionWeight) UnmarshalJSON(data []byte) error {
	switch strings.TrimSpace(string(data)) {
	case "true":
		*w = 1
		return nil
	case "false":
		*w = 0
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*w = SelectionWeight(f)

	return nil
}

// ProfileRecord is a single SkyBlock profile as returned by the profiles endpoint.
// Members holds the raw member data keyed by the member's unique id.
type ProfileRecord struct {
	ProfileID string                     `json:"profile_id"`
	CuteName  string                     `json:"cute_name"`
	Members   map[string]json.RawMessage `json:"members"`
	// Only present on the record the requested player has marked as current.
	Selected *SelectionWeight `json:"selected,omitempty"`
}

// HasMember reports whether the unique id is a member of this profile.
func (p *ProfileRecord) HasMember(uniqueID string) bool {
	_, ok := p.Members[uniqueID]
	return ok
}

// ProfileSet is the ordered list of profiles belonging to a single player.
type ProfileSet []*ProfileRecord

// CuteNames returns the human readable names of all profiles in the set, in order.
func (set ProfileSet) CuteNames() []string {
	names := make([]string, 0, len(set))
	for _, p := range set {
		if p == nil {
			continue
		}
		names = append(names, p.CuteName)
	}

	return names
}

// NormalizedProfile is a single member's data for the selected profile enriched
// with the identity and profile metadata that downstream commands need.
type NormalizedProfile struct {
	UniqueID    string
	DisplayName string
	ProfileID   string
	CuteName    string

	// Extra holds every member data field except the enrichment keys.
	Extra map[string]json.RawMessage
}

// Fields flattens the profile into a single mapping. The enrichment keys are
// always present and take precedence over member data.
func (p *NormalizedProfile) Fields() map[string]json.RawMessage {
	fields := make(map[string]json.RawMessage, len(p.Extra)+4)
	for k, v := range p.Extra {
		fields[k] = v
	}

	fields[UniqueIDKey] = rawString(p.UniqueID)
	fields[DisplayNameKey] = rawString(p.DisplayName)
	fields[ProfileIDKey] = rawString(p.ProfileID)
	fields[CuteNameKey] = rawString(p.CuteName)

	return fields
}

// Get returns the raw value stored under key.
func (p *NormalizedProfile) Get(key string) (json.RawMessage, bool) {
	v, ok := p.Fields()[key]
	return v, ok
}

// Decode unmarshals the value stored under key into v. A missing key leaves v
// untouched and returns false.
func (p *NormalizedProfile) Decode(key string, v interface{}) (bool, error) {
	raw, ok := p.Get(key)
	if !ok {
		return false, nil
	}

	return true, json.Unmarshal(raw, v)
}

// MarshalJSON writes the flattened mapping.
func (p *NormalizedProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Fields())
}

func rawString(s string) json.RawMessage {
	b, _ := json.Marshal(s)
	return b
}
