package alexa

import (
	"context"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/mikeflynn/go-alexa/skillserver"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
	"github.com/rking788/skyblock-helper/skyblock"
)

// Slot names used by the interaction model.
const (
	PlayerSlot  = "Player"
	ProfileSlot = "Profile"
)

// DefaultRequestTimeout bounds the upstream work done for a single intent.
const DefaultRequestTimeout = 8 * time.Second

var (
	service        *skyblock.Service
	requestTimeout = DefaultRequestTimeout
)

// InitEnv provides a package level initialization point for any work that is environment specific
func InitEnv(s *skyblock.Service, timeout time.Duration) {
	service = s
	if timeout > 0 {
		requestTimeout = timeout
	}
}

// Handler is the type of function that should be used to respond to a specific intent.
type Handler func(*skillserver.EchoRequest) *skillserver.EchoResponse

// CallerWrapper is a handler function wrapper that will fail the chain of handlers
// if the Alexa request does not identify the user.
func CallerWrapper(handler Handler) Handler {

	return func(req *skillserver.EchoRequest) *skillserver.EchoResponse {
		if req.Session.User.UserID == "" {
			glg.Warn("Received a request without a user id")
			response := skillserver.NewEchoResponse()
			response.OutputSpeech("Sorry, I couldn't tell who is asking. Please try again from the Alexa app.")
			return response
		}

		return handler(req)
	}
}

func callerFromRequest(req *skillserver.EchoRequest) models.CallerIdentity {
	// Alexa has no display name to fall back on.
	return models.CallerIdentity{ID: req.Session.User.UserID}
}

func slotValue(req *skillserver.EchoRequest, name string) string {
	value, err := req.GetSlotValue(name)
	if err != nil {
		return ""
	}

	return value
}

func errorResponse(err error) *skillserver.EchoResponse {

	var userErr models.UserError
	if !errors.As(err, &userErr) {
		raven.CaptureError(err, nil)
		glg.Errorf("Unexpected error handling intent: %s", err.Error())
	}

	title, hint := models.Describe(err)
	response := skillserver.NewEchoResponse()
	response.OutputSpeech(title+" "+hint).
		Card(title, hint)

	return response
}

// WelcomePrompt is responsible for prompting the user with information about what they can ask
// the skill to do.
func WelcomePrompt(echoRequest *skillserver.EchoRequest) (response *skillserver.EchoResponse) {
	response = skillserver.NewEchoResponse()

	response.OutputSpeech("Welcome to SkyBlock Helper. You can ask about a player's profile, " +
		"list their profiles, or link your Minecraft account.").
		Reprompt("Which player would you like to hear about?").
		EndSession(false)

	return
}

// HelpPrompt provides the required information to satisfy the HelpIntent built-in Alexa intent.
func HelpPrompt(echoRequest *skillserver.EchoRequest) (response *skillserver.EchoResponse) {
	response = skillserver.NewEchoResponse()

	response.OutputSpeech("I can look up Hypixel SkyBlock profiles. Ask for a player by name, " +
		"optionally with a profile like Banana. If you link your Minecraft account " +
		"you can leave the name out.").
		EndSession(false)

	return
}

// PlayerProfile describes the selected or requested profile of a player. Without a
// player slot the linked account of the caller is used.
func PlayerProfile(request *skillserver.EchoRequest) *skillserver.EchoResponse {

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	player := slotValue(request, PlayerSlot)
	profileName := slotValue(request, ProfileSlot)

	profile, err := service.ProfileData(ctx, callerFromRequest(request), player, profileName)
	if err != nil {
		return errorResponse(err)
	}

	response := skillserver.NewEchoResponse()
	response.OutputSpeech(skyblock.Summary(profile)).
		Card(profile.DisplayName+" on "+profile.CuteName,
			skyblock.ProfilePageURL(profile.DisplayName, profile.CuteName))

	return response
}

// ListProfiles names every profile of a player.
func ListProfiles(request *skillserver.EchoRequest) *skillserver.EchoResponse {

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	listing, err := service.ProfileList(ctx, callerFromRequest(request), slotValue(request, PlayerSlot), "")
	if err != nil {
		return errorResponse(err)
	}

	response := skillserver.NewEchoResponse()
	response.OutputSpeech(skyblock.ListingSummary(listing))

	return response
}

// LinkAccount remembers the Minecraft name of the caller.
func LinkAccount(request *skillserver.EchoRequest) *skillserver.EchoResponse {

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	player, err := service.Link(ctx, callerFromRequest(request), slotValue(request, PlayerSlot))
	if err != nil {
		return errorResponse(err)
	}

	response := skillserver.NewEchoResponse()
	response.OutputSpeech("Your account is now linked to " + player.DisplayName + ".")

	return response
}

// UnlinkAccount forgets the Minecraft name of the caller.
func UnlinkAccount(request *skillserver.EchoRequest) *skillserver.EchoResponse {

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	if err := service.Unlink(ctx, callerFromRequest(request)); err != nil {
		return errorResponse(err)
	}

	response := skillserver.NewEchoResponse()
	response.OutputSpeech("Your account has been unlinked.")

	return response
}
