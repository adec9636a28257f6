package skyblock

import (
	"encoding/json"
	"fmt"

	"github.com/rking788/skyblock-helper/models"
)

var enrichmentKeys = []string{
	models.UniqueIDKey,
	models.DisplayNameKey,
	models.ProfileIDKey,
	models.CuteNameKey,
}

// Normalize extracts the member data for uniqueID from the record and enriches it
// with the identity and profile metadata. The record is not modified. uniqueID
// must be a member of the record.
func Normalize(record *models.ProfileRecord, uniqueID, displayName string) *models.NormalizedProfile {

	raw, ok := record.Members[uniqueID]
	if !ok {
		panic(fmt.Sprintf("skyblock: %s is not a member of profile %s", uniqueID, record.ProfileID))
	}

	extra := make(map[string]json.RawMessage)
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &extra); err != nil {
			// Member data is always an object, keep the blob reachable anyway.
			extra = map[string]json.RawMessage{"member": raw}
		}
	}

	for _, key := range enrichmentKeys {
		delete(extra, key)
	}

	return &models.NormalizedProfile{
		UniqueID:    uniqueID,
		DisplayName: displayName,
		ProfileID:   record.ProfileID,
		CuteName:    record.CuteName,
		Extra:       extra,
	}
}
