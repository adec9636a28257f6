package skyblock

import (
	"fmt"
	"net/url"
	"strings"
)

// ProfilePageURLFmt is the SkyCrypt stats page for a player's profile.
const ProfilePageURLFmt = "https://sky.shiiyu.moe/stats/%s/%s"

// ProfileNames are the cute names the game assigns to SkyBlock profiles.
var ProfileNames = []string{
	"Apple", "Banana", "Blueberry", "Coconut", "Cucumber", "Grapes", "Kiwi",
	"Lemon", "Lime", "Mango", "Orange", "Papaya", "Peach", "Pear", "Pineapple",
	"Pomegranate", "Raspberry", "Strawberry", "Tomato", "Watermelon", "Zucchini",
}

var profileNameLookup = func() map[string]bool {
	lookup := make(map[string]bool, len(ProfileNames))
	for _, name := range ProfileNames {
		lookup[strings.ToLower(name)] = true
	}
	return lookup
}()

// IsProfileName reports whether s is one of the SkyBlock profile names, ignoring case.
func IsProfileName(s string) bool {
	return profileNameLookup[strings.ToLower(s)]
}

// ProfilePageURL links to the stats page for a player's profile.
func ProfilePageURL(playerName, cuteName string) string {
	return fmt.Sprintf(ProfilePageURLFmt, url.PathEscape(playerName), url.PathEscape(cuteName))
}
