package hypixel

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
)

// StatusResponse is implemented by every response decoded by Client.Execute.
type StatusResponse interface {
	Succeeded() bool
	FailureCause() string
}

// BaseResponse represents the data returned as part of all of the Hypixel API
// requests.
type BaseResponse struct {
	Success bool   `json:"success"`
	Cause   string `json:"cause,omitempty"`
}

// Succeeded returns the success flag from a Hypixel response.
func (b *BaseResponse) Succeeded() bool { return b.Success }

// FailureCause returns the cause provided with an unsuccessful response.
func (b *BaseResponse) FailureCause() string { return b.Cause }

// ProfilesResponse is the body returned by the SkyBlock profiles endpoint.
// Profiles is nil when the player has never joined SkyBlock.
type ProfilesResponse struct {
	*BaseResponse
	Profiles models.ProfileSet `json:"profiles"`
}

// Client is a type that contains all information needed to make requests to the
// Hypixel API.
type Client struct {
	*http.Client
	BaseURL string
	APIKey  string
}

// NewClient creates a Client, an empty baseURL uses the public API.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: baseURL,
		APIKey:  apiKey,
	}
}

// FetchProfiles loads every SkyBlock profile for the unique id. found is false when
// the API answered but the player has no profiles.
func (c *Client) FetchProfiles(ctx context.Context, uniqueID string) (profiles models.ProfileSet, found bool, err error) {

	response := &ProfilesResponse{BaseResponse: &BaseResponse{}}
	if err = c.Execute(ctx, NewProfilesRequest(uniqueID), response); err != nil {
		return nil, false, err
	}

	if response.Profiles == nil {
		glg.Infof("No SkyBlock profiles found for %s", uniqueID)
		return nil, false, nil
	}

	glg.Debugf("Found %d SkyBlock profiles for %s", len(response.Profiles), uniqueID)

	return response.Profiles, true, nil
}

// Execute is a generic request execution method that sends the request to the
// Hypixel API and deserialises the body into response. Every failure is returned
// as a *FetchError, nothing is retried.
func (c *Client) Execute(ctx context.Context, request *APIRequest, response StatusResponse) error {

	if c.APIKey == "" {
		err := &FetchError{Kind: InvalidCredential, Cause: "no API key configured"}
		alertInvalidCredential(err)
		return err
	}

	req, err := http.NewRequestWithContext(ctx, request.HTTPMethod, c.BaseURL+request.Endpoint, nil)
	if err != nil {
		return &FetchError{Kind: Unavailable, Err: errors.Wrap(err, "building hypixel request")}
	}

	params := request.Params
	if params == nil {
		params = make(map[string][]string)
	}
	params.Set("key", c.APIKey)
	req.URL.RawQuery = params.Encode()
	req.Header.Add("Accept", "application/json")

	resp, err := c.Do(req)
	if err != nil {
		raven.CaptureError(err, map[string]string{"upstream": "hypixel"})
		glg.Errorf("Error executing hypixel request: %s", errors.Cause(err).Error())
		return &FetchError{Kind: Unavailable, Err: errors.Wrap(err, "hypixel request failed")}
	}
	defer resp.Body.Close()

	// The body is decoded whatever the status, a rejected key comes back as a 403
	// with the usual {success, cause} shape.
	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		glg.Warnf("Error decoding hypixel response (status %d): %s", resp.StatusCode, err.Error())
		return &FetchError{Kind: Unavailable, Err: errors.Wrapf(err, "decoding hypixel response with status %d", resp.StatusCode)}
	}

	if !response.Succeeded() {
		cause := response.FailureCause()
		if cause == InvalidAPIKeyCause {
			err := &FetchError{Kind: InvalidCredential, Cause: cause}
			alertInvalidCredential(err)
			return err
		}

		glg.Warnf("Hypixel request failed with status %d: %s", resp.StatusCode, cause)
		return &FetchError{Kind: Unavailable, Cause: cause}
	}

	return nil
}

// alertInvalidCredential makes a rejected key visible to operators, it affects
// every request and not only the current one.
func alertInvalidCredential(err *FetchError) {
	raven.CaptureMessage("Hypixel API key rejected: "+err.Cause,
		map[string]string{"upstream": "hypixel", "alert": "invalid-credential"})
	glg.Errorf("############################### Hypixel API key has failed: %s", err.Cause)
}
