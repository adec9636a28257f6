package hypixel

import "net/url"

// APIRequest is a generic request that can be sent to a hypixel.Client. The client
// adds the API key to the query parameters.
type APIRequest struct {
	HTTPMethod string
	Endpoint   string
	Params     url.Values
}

// NewProfilesRequest creates a request for all SkyBlock profiles of a player.
func NewProfilesRequest(uniqueID string) *APIRequest {
	params := url.Values{}
	params.Set("uuid", uniqueID)

	return &APIRequest{
		HTTPMethod: "GET",
		Endpoint:   ProfilesEndpoint,
		Params:     params,
	}
}
