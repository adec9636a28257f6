package mojang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kpango/glg"
	"github.com/mailru/easyjson"
	"github.com/pkg/errors"

	"github.com/rking788/skyblock-helper/models"
)

// Client is a type that encapsulates the requests made to the Mojang
// identity services.
type Client struct {
	*http.Client
	APIURL     string
	SessionURL string
}

// NewClient creates a Client for the given base URLs, empty values fall back to
// the public Mojang endpoints.
func NewClient(apiURL, sessionURL string, timeout time.Duration) *Client {

	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	if sessionURL == "" {
		sessionURL = DefaultSessionURL
	}

	return &Client{
		Client:     &http.Client{Timeout: timeout},
		APIURL:     apiURL,
		SessionURL: sessionURL,
	}
}

// LookupIDByName resolves a player name (16 characters or less) to the player's
// unique id. models.ErrPlayerNotFound is returned if nobody uses that name.
func (c *Client) LookupIDByName(ctx context.Context, name string) (*Player, error) {
	if name == "" {
		return nil, models.ErrPlayerNotFound
	}

	endpoint := c.APIURL + fmt.Sprintf(nameLookupPathFmt, url.PathEscape(name))
	return c.execute(ctx, endpoint)
}

// LookupNameByID resolves a 32 character unique id to the player's current name.
func (c *Client) LookupNameByID(ctx context.Context, id string) (*Player, error) {
	if id == "" {
		return nil, models.ErrPlayerNotFound
	}

	endpoint := c.SessionURL + fmt.Sprintf(idLookupPathFmt, url.PathEscape(id))
	return c.execute(ctx, endpoint)
}

// execute sends a single GET request. Any status above 200 is a failure: 204 and
// 404 are how Mojang reports unknown players, everything else is treated as the
// service being unavailable.
func (c *Client) execute(ctx context.Context, endpoint string) (*Player, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building mojang request")
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "mojang request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent, resp.StatusCode == http.StatusNotFound:
		return nil, models.ErrPlayerNotFound
	case resp.StatusCode > http.StatusOK:
		return nil, errors.Errorf("mojang returned status %d for %s", resp.StatusCode, req.URL.Path)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading mojang response")
	}

	// An empty body on a 200 also means the player does not exist.
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, models.ErrPlayerNotFound
	}

	player := &Player{}
	if err = easyjson.Unmarshal(body, player); err != nil {
		glg.Warnf("Failed to decode mojang response: %s", err.Error())
		return nil, errors.Wrap(err, "decoding mojang response")
	}
	if player.ID == "" {
		return nil, models.ErrPlayerNotFound
	}

	glg.Debugf("Mojang lookup resolved %s (%s)", player.Name, player.ID)

	return player, nil
}
