package skyblock

import (
	"strings"

	"github.com/rking788/skyblock-helper/models"
)

// Select picks the profile to show for a player.
//
// With a profile name hint the first profile whose cute name matches it (ignoring
// case) is used. Without a hint only profiles the player is a member of and has
// marked as selected are eligible, and the one with the highest selection weight
// wins. Profiles the player is merely a member of, such as co-op profiles they
// never switched to, are never chosen automatically.
func Select(profiles models.ProfileSet, uniqueID, hint string) (*models.ProfileRecord, error) {

	if hint != "" {
		for _, profile := range profiles {
			if profile != nil && strings.EqualFold(profile.CuteName, hint) {
				return profile, nil
			}
		}

		return nil, &SelectionError{Kind: NameNotFound, Name: hint}
	}

	var best *models.ProfileRecord
	for _, profile := range profiles {
		if profile == nil || profile.Selected == nil || !profile.HasMember(uniqueID) {
			continue
		}

		// Strictly greater keeps the first of equal weights.
		if best == nil || *profile.Selected > *best.Selected {
			best = profile
		}
	}

	if best == nil {
		return nil, &SelectionError{Kind: NoSelectedProfile}
	}

	return best, nil
}
