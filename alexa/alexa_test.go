package alexa

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mikeflynn/go-alexa/skillserver"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
	"github.com/rking788/skyblock-helper/skyblock"
	"github.com/rking788/skyblock-helper/storage"
)

const notchID = "069a79f444e94726a5befca90e38aaf5"

type fakeIdentities struct {
	links *storage.MemoryLinks
}

func (f *fakeIdentities) Resolve(ctx context.Context, caller models.CallerIdentity, rawInput string) (*models.ResolvedIdentity, error) {
	if rawInput == "" {
		rawInput, _, _ = f.links.LinkedName(ctx, caller.ID)
	}
	if strings.EqualFold(rawInput, "notch") {
		return &models.ResolvedIdentity{DisplayName: "Notch", UniqueID: notchID}, nil
	}

	return nil, &fakeUserError{}
}

type fakeUserError struct{}

func (*fakeUserError) Error() string { return "unknown player" }
func (*fakeUserError) Title() string { return "Error! Username was incorrect." }
func (*fakeUserError) Hint() string  { return "Make sure you typed it correctly." }

type fakeProfiles struct {
	err error
}

func (f *fakeProfiles) FetchProfiles(_ context.Context, uniqueID string) (models.ProfileSet, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}

	selected := models.SelectionWeight(1)
	return models.ProfileSet{
		{
			ProfileID: "p1",
			CuteName:  "Banana",
			Members:   map[string]json.RawMessage{uniqueID: json.RawMessage(`{"coin_purse":2500}`)},
			Selected:  &selected,
		},
		{
			ProfileID: "p2",
			CuteName:  "Mango",
			Members:   map[string]json.RawMessage{uniqueID: json.RawMessage(`{}`)},
		},
	}, true, nil
}

func setup(profiles *fakeProfiles) *storage.MemoryLinks {
	links := storage.NewMemoryLinks()
	InitEnv(skyblock.NewService(&fakeIdentities{links: links}, profiles, links), 0)
	return links
}

func intentRequest(t *testing.T, userID, intent string, slots map[string]string) *skillserver.EchoRequest {

	slotJSON := make([]string, 0, len(slots))
	for name, value := range slots {
		slotJSON = append(slotJSON, fmt.Sprintf(`%q:{"name":%q,"value":%q}`, name, name, value))
	}

	body := fmt.Sprintf(`{
		"version": "1.0",
		"session": {"new": true, "sessionId": "session-1", "user": {"userId": %q}},
		"request": {"type": "IntentRequest", "requestId": "request-1",
			"intent": {"name": %q, "slots": {%s}}}
	}`, userID, intent, strings.Join(slotJSON, ","))

	request := &skillserver.EchoRequest{}
	if err := json.Unmarshal([]byte(body), request); err != nil {
		t.Fatal("Failed to build the echo request: ", err.Error())
	}

	return request
}

func speech(t *testing.T, response *skillserver.EchoResponse) string {
	data, err := json.Marshal(response)
	if err != nil {
		t.Fatal("Failed to marshal the echo response: ", err.Error())
	}

	return string(data)
}

func TestPlayerProfile(t *testing.T) {

	setup(&fakeProfiles{})
	request := intentRequest(t, "amzn1.user", "PlayerProfile", map[string]string{PlayerSlot: "Notch"})

	out := speech(t, PlayerProfile(request))
	if !strings.Contains(out, "Notch has 2,500 coins in their purse on the Banana profile.") {
		t.Fatal("Unexpected profile speech: ", out)
	}
	if !strings.Contains(out, "https://sky.shiiyu.moe/stats/Notch/Banana") {
		t.Fatal("Expected the profile page in the card: ", out)
	}
}

func TestPlayerProfileNamedProfile(t *testing.T) {

	setup(&fakeProfiles{})
	request := intentRequest(t, "amzn1.user", "PlayerProfile",
		map[string]string{PlayerSlot: "Notch", ProfileSlot: "mango"})

	out := speech(t, PlayerProfile(request))
	if !strings.Contains(out, "Notch is playing on their Mango profile.") {
		t.Fatal("Unexpected profile speech: ", out)
	}
}

func TestPlayerProfileUsesLinkedAccount(t *testing.T) {

	links := setup(&fakeProfiles{})
	links.SaveLinkedName(context.Background(), "amzn1.user", "Notch")

	out := speech(t, PlayerProfile(intentRequest(t, "amzn1.user", "PlayerProfile", nil)))
	if !strings.Contains(out, "on the Banana profile") {
		t.Fatal("Expected the linked account to be used: ", out)
	}
}

func TestPlayerProfileUnknownPlayer(t *testing.T) {

	setup(&fakeProfiles{})
	request := intentRequest(t, "amzn1.user", "PlayerProfile", map[string]string{PlayerSlot: "Nobody"})

	out := speech(t, PlayerProfile(request))
	if !strings.Contains(out, "Error! Username was incorrect.") {
		t.Fatal("Expected the user facing error title: ", out)
	}
}

func TestPlayerProfileHidesRawErrors(t *testing.T) {

	setup(&fakeProfiles{err: errors.New("dial tcp: connection refused")})
	request := intentRequest(t, "amzn1.user", "PlayerProfile", map[string]string{PlayerSlot: "Notch"})

	out := speech(t, PlayerProfile(request))
	if strings.Contains(out, "connection refused") {
		t.Fatal("Raw error leaked to the user: ", out)
	}
	if !strings.Contains(out, models.GenericErrorTitle) {
		t.Fatal("Expected the generic error title: ", out)
	}
}

func TestListProfiles(t *testing.T) {

	setup(&fakeProfiles{})
	request := intentRequest(t, "amzn1.user", "ListProfiles", map[string]string{PlayerSlot: "Notch"})

	out := speech(t, ListProfiles(request))
	if !strings.Contains(out, "Notch has 2 profiles, Banana and Mango.") {
		t.Fatal("Unexpected listing speech: ", out)
	}
}

func TestLinkAndUnlinkAccount(t *testing.T) {

	links := setup(&fakeProfiles{})
	request := intentRequest(t, "amzn1.user", "LinkAccount", map[string]string{PlayerSlot: "notch"})

	out := speech(t, LinkAccount(request))
	if !strings.Contains(out, "Your account is now linked to Notch.") {
		t.Fatal("Unexpected link speech: ", out)
	}

	name, ok, _ := links.LinkedName(context.Background(), "amzn1.user")
	if !ok || name != "Notch" {
		t.Fatalf("Expected the canonical name to be stored, found %q", name)
	}

	UnlinkAccount(intentRequest(t, "amzn1.user", "UnlinkAccount", nil))
	if _, ok, _ = links.LinkedName(context.Background(), "amzn1.user"); ok {
		t.Fatal("Expected the link to be removed")
	}
}

func TestCallerWrapperRejectsAnonymousRequests(t *testing.T) {

	called := false
	handler := CallerWrapper(func(*skillserver.EchoRequest) *skillserver.EchoResponse {
		called = true
		return skillserver.NewEchoResponse()
	})

	out := speech(t, handler(intentRequest(t, "", "PlayerProfile", nil)))
	if called {
		t.Fatal("Wrapped handler should not run without a user id")
	}
	if !strings.Contains(out, "couldn't tell who is asking") {
		t.Fatal("Unexpected speech: ", out)
	}
}

func TestWelcomePromptKeepsSessionOpen(t *testing.T) {

	response := WelcomePrompt(intentRequest(t, "amzn1.user", "", nil))
	if response.Response.ShouldEndSession {
		t.Fatal("Welcome prompt should keep the session open")
	}
}
