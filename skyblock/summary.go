package skyblock

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rking788/skyblock-helper/models"
)

// PurseKey is the member field holding the coins a player carries.
const PurseKey = "coin_purse"

var printer = message.NewPrinter(language.English)

// Summary is the spoken description of a selected profile.
func Summary(profile *models.NormalizedProfile) string {

	var purse float64
	ok, err := profile.Decode(PurseKey, &purse)
	if err != nil || !ok {
		return fmt.Sprintf("%s is playing on their %s profile.", profile.DisplayName, profile.CuteName)
	}

	return fmt.Sprintf("%s has %s coins in their purse on the %s profile.",
		profile.DisplayName, FormatCoins(purse), profile.CuteName)
}

// ListingSummary names every profile in the listing.
func ListingSummary(listing *ProfileListing) string {

	names := listing.Profiles.CuteNames()
	player := listing.Player.DisplayName

	switch len(names) {
	case 0:
		return fmt.Sprintf("%s has no SkyBlock profiles left.", player)
	case 1:
		return fmt.Sprintf("%s has one profile, %s.", player, names[0])
	}

	return fmt.Sprintf("%s has %d profiles, %s and %s.", player, len(names),
		strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
}

// FormatCoins rounds down to whole coins and groups the thousands.
func FormatCoins(coins float64) string {
	return printer.Sprintf("%d", int64(math.Floor(coins)))
}
