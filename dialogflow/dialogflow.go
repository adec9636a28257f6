package dialogflow

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/golang/protobuf/jsonpb"
	"github.com/kpango/glg"
	"github.com/pkg/errors"
	df2 "google.golang.org/genproto/googleapis/cloud/dialogflow/v2"

	"github.com/rking788/skyblock-helper/models"
	"github.com/rking788/skyblock-helper/skyblock"
)

// Parameter names used by the agent.
const (
	PlayerParam  = "player"
	ProfileParam = "profile"
)

// DefaultRequestTimeout bounds the upstream work done for a single webhook call.
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

// Handler responds to a single matched intent.
type Handler func(context.Context, *df2.WebhookRequest) *DialogFlowResponse

// Handlers are the intent handlers keyed by the intent display name.
var Handlers = map[string]Handler{
	"PlayerProfile": PlayerProfile,
	"ListProfiles":  ListProfiles,
	"LinkAccount":   LinkAccount,
	"UnlinkAccount": UnlinkAccount,
	"Help":          Help,
}

type DialogFlowResponse struct {
	FulfillmentText string         `json:"fulfillmentText"`
	Payload         *GooglePayload `json:"payload"`
}

type GooglePayload struct {
	Google *AssistantResponse `json:"google"`
}

type AssistantResponse struct {
	ExpectUserResponse bool          `json:"expectUserResponse"`
	Rich               *RichResponse `json:"richResponse"`
}

type AssistantResponseItem struct {
	Simple *SimpleResponse `json:"simpleResponse,omitempty"`
	Card   *BasicCard      `json:"basicCard,omitempty"`
}

type SimpleResponse struct {
	TextToSpeech string `json:"textToSpeech"`
	DisplayText  string `json:"displayText,omitempty"`
}

// BasicCard is shown below the spoken response on devices with a screen.
type BasicCard struct {
	Title         string `json:"title"`
	FormattedText string `json:"formattedText"`
}

type RichResponse struct {
	Items []*AssistantResponseItem `json:"items"`
}

func newGoogleDialogflowResponse() *DialogFlowResponse {
	response := &DialogFlowResponse{
		Payload: &GooglePayload{
			Google: &AssistantResponse{
				ExpectUserResponse: false,
				Rich:               &RichResponse{},
			},
		},
	}

	response.Payload.Google.Rich.Items = make([]*AssistantResponseItem, 0, 2)

	return response
}

func (r *DialogFlowResponse) setExpectUserResponse(expect bool) {
	r.Payload.Google.ExpectUserResponse = expect
}

func (r *DialogFlowResponse) setGoogleTextToSpeech(text string) {

	if len(r.Payload.Google.Rich.Items) == 0 || r.Payload.Google.Rich.Items[0].Simple == nil {
		item := &AssistantResponseItem{Simple: &SimpleResponse{}}
		r.Payload.Google.Rich.Items = append([]*AssistantResponseItem{item}, r.Payload.Google.Rich.Items...)
	}

	r.Payload.Google.Rich.Items[0].Simple.TextToSpeech = text
	r.FulfillmentText = text
}

func (r *DialogFlowResponse) addCard(title, text string) {
	r.Payload.Google.Rich.Items = append(r.Payload.Google.Rich.Items,
		&AssistantResponseItem{Card: &BasicCard{Title: title, FormattedText: text}})
}

// callerFromRequest reads the assistant user id and the display name of their
// Google profile from the original detect intent request.
func callerFromRequest(r *df2.WebhookRequest) models.CallerIdentity {
	user := r.GetOriginalDetectIntentRequest().GetPayload().GetFields()["user"].GetStructValue().GetFields()

	return models.CallerIdentity{
		ID:       user["userId"].GetStringValue(),
		Nickname: user["profile"].GetStructValue().GetFields()["displayName"].GetStringValue(),
	}
}

func parameter(r *df2.WebhookRequest, name string) string {
	return r.GetQueryResult().GetParameters().GetFields()[name].GetStringValue()
}

func anonymousResponse() *DialogFlowResponse {
	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("Sorry, I need to know who you are to do that. " +
		"Please sign in to the Google Assistant and try again.")
	return response
}

func errorResponse(err error) *DialogFlowResponse {

	var userErr models.UserError
	if !errors.As(err, &userErr) {
		raven.CaptureError(err, nil)
		glg.Errorf("Unexpected error handling webhook: %s", err.Error())
	}

	title, hint := models.Describe(err)
	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech(title + " " + hint)

	return response
}

// WebhookHandler decodes a Dialogflow v2 fulfillment request, runs the handler
// for the matched intent and writes the response.
func WebhookHandler(w http.ResponseWriter, r *http.Request) {

	webhookRequest := &df2.WebhookRequest{}
	unmarshaler := jsonpb.Unmarshaler{AllowUnknownFields: true}
	if err := unmarshaler.Unmarshal(r.Body, webhookRequest); err != nil {
		glg.Warnf("Failed to decode dialogflow webhook request: %s", err.Error())
		http.Error(w, "invalid webhook request", http.StatusBadRequest)
		return
	}

	startTime := time.Now()
	defer func(start time.Time) {
		glg.Successf("Webhook execution time: %v", time.Since(start))
	}(startTime)

	intentName := webhookRequest.GetQueryResult().GetIntent().GetDisplayName()
	glg.Infof("Dialogflow IntentName: %s", intentName)

	var response *DialogFlowResponse
	if handler, ok := Handlers[intentName]; ok {
		ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
		defer cancel()
		response = handler(ctx, webhookRequest)
	} else {
		response = newGoogleDialogflowResponse()
		response.setGoogleTextToSpeech("Sorry, I did not understand your request.")
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		glg.Errorf("Failed to write dialogflow response: %s", err.Error())
	}
}

// Help lets the user know what the action can do.
func Help(_ context.Context, _ *df2.WebhookRequest) *DialogFlowResponse {

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("I can look up Hypixel SkyBlock profiles. Ask for a player by name, " +
		"optionally with a profile like Banana. If you link your Minecraft account " +
		"you can leave the name out.")
	response.setExpectUserResponse(true)

	return response
}

// PlayerProfile describes the selected or requested profile of a player. Without a
// player parameter the linked account and then the Google display name are tried.
func PlayerProfile(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {

	profile, err := service.ProfileData(ctx, callerFromRequest(r), parameter(r, PlayerParam), parameter(r, ProfileParam))
	if err != nil {
		return errorResponse(err)
	}

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech(skyblock.Summary(profile))
	response.addCard(profile.DisplayName+" on "+profile.CuteName,
		skyblock.ProfilePageURL(profile.DisplayName, profile.CuteName))

	return response
}

// ListProfiles names every profile of a player.
func ListProfiles(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {

	listing, err := service.ProfileList(ctx, callerFromRequest(r), parameter(r, PlayerParam), "")
	if err != nil {
		return errorResponse(err)
	}

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech(skyblock.ListingSummary(listing))

	return response
}

// LinkAccount remembers the Minecraft name of the caller.
func LinkAccount(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {

	caller := callerFromRequest(r)
	if caller.ID == "" {
		return anonymousResponse()
	}

	player, err := service.Link(ctx, caller, parameter(r, PlayerParam))
	if err != nil {
		return errorResponse(err)
	}

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("Your account is now linked to " + player.DisplayName + ".")

	return response
}

// UnlinkAccount forgets the Minecraft name of the caller.
func UnlinkAccount(ctx context.Context, r *df2.WebhookRequest) *DialogFlowResponse {

	caller := callerFromRequest(r)
	if caller.ID == "" {
		return anonymousResponse()
	}

	if err := service.Unlink(ctx, caller); err != nil {
		return errorResponse(err)
	}

	response := newGoogleDialogflowResponse()
	response.setGoogleTextToSpeech("Your account has been unlinked.")

	return response
}
