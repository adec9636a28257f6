package skyblock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rking788/skyblock-helper/hypixel"
	"github.com/rking788/skyblock-helper/identity"
	"github.com/rking788/skyblock-helper/models"
	"github.com/rking788/skyblock-helper/mojang"
	"github.com/rking788/skyblock-helper/storage"
)

type stubLookup struct {
	players map[string]*mojang.Player
	names   []string
}

func (s *stubLookup) LookupIDByName(_ context.Context, name string) (*mojang.Player, error) {
	s.names = append(s.names, name)
	if p, ok := s.players[strings.ToLower(name)]; ok {
		return p, nil
	}
	return nil, models.ErrPlayerNotFound
}

func (s *stubLookup) LookupNameByID(_ context.Context, id string) (*mojang.Player, error) {
	for _, p := range s.players {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrPlayerNotFound
}

type stubProfiles struct {
	sets      map[string]models.ProfileSet
	err       error
	requested []string
}

func (s *stubProfiles) FetchProfiles(_ context.Context, uniqueID string) (models.ProfileSet, bool, error) {
	s.requested = append(s.requested, uniqueID)
	if s.err != nil {
		return nil, false, s.err
	}
	set, ok := s.sets[uniqueID]
	return set, ok, nil
}

type testEnv struct {
	service  *Service
	lookup   *stubLookup
	profiles *stubProfiles
	links    *storage.MemoryLinks
}

func newTestEnv() *testEnv {
	lookup := &stubLookup{players: map[string]*mojang.Player{
		"notch": {ID: playerID, Name: "Notch"},
		"dream": {ID: otherID, Name: "Dream"},
	}}
	profiles := &stubProfiles{sets: map[string]models.ProfileSet{
		playerID: {
			record("n1", "Apple", weight(1), playerID),
			record("n2", "Banana", weight(2), playerID),
		},
		otherID: {
			record("d1", "Mango", weight(1), otherID),
		},
	}}
	links := storage.NewMemoryLinks()

	return &testEnv{
		service:  NewService(identity.NewResolver(lookup, links), profiles, links),
		lookup:   lookup,
		profiles: profiles,
		links:    links,
	}
}

func TestProfileDataExplicitTaggedName(t *testing.T) {
	env := newTestEnv()

	profile, err := env.service.ProfileData(context.Background(), models.CallerIdentity{ID: "1"}, "[Admin] Notch", "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Notch"}, env.lookup.names)
	assert.Equal(t, "n2", profile.ProfileID)
	assert.Equal(t, "Banana", profile.CuteName)
	assert.Equal(t, "Notch", profile.DisplayName)
	assert.Equal(t, playerID, profile.UniqueID)
}

func TestProfileDataLinkedAccount(t *testing.T) {
	env := newTestEnv()
	caller := models.CallerIdentity{ID: "42", Nickname: "Notch"}

	_, err := env.service.Link(context.Background(), caller, "dream")
	require.NoError(t, err)

	linked, ok, _ := env.links.LinkedName(context.Background(), "42")
	require.True(t, ok)
	assert.Equal(t, "Dream", linked, "the canonical name is stored")

	profile, err := env.service.ProfileData(context.Background(), caller, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Dream", profile.DisplayName)
	assert.Equal(t, "Mango", profile.CuteName)

	require.NoError(t, env.service.Unlink(context.Background(), caller))
	profile, err = env.service.ProfileData(context.Background(), caller, "", "")
	require.NoError(t, err)
	assert.Equal(t, "Notch", profile.DisplayName, "falls back to the nickname once unlinked")
}

func TestProfileDataNicknameFailure(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ProfileData(context.Background(),
		models.CallerIdentity{ID: "7", Nickname: "xX_Gamer_Xx"}, "", "")

	var idErr *identity.Error
	require.True(t, errors.As(err, &idErr))
	assert.Equal(t, models.SourceNickname, idErr.Source)

	title, _ := models.Describe(err)
	assert.Contains(t, title, "nickname")
	assert.Empty(t, env.profiles.requested)
}

func TestProfileDataProfileNameShortcut(t *testing.T) {
	env := newTestEnv()
	caller := models.CallerIdentity{ID: "1", Nickname: "[VIP] Notch"}

	profile, err := env.service.ProfileData(context.Background(), caller, "apple", "")
	require.NoError(t, err)
	assert.Equal(t, "n1", profile.ProfileID)
	assert.Equal(t, []string{"Notch"}, env.lookup.names)
}

func TestProfileDataExplicitProfile(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.ProfileData(context.Background(), models.CallerIdentity{}, "Notch", "Zucchini")

	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, NameNotFound, selErr.Kind)
}

func TestProfileDataNamedProfileOfAnotherPlayer(t *testing.T) {
	env := newTestEnv()
	env.profiles.sets[playerID] = models.ProfileSet{
		record("p1", "Apple", nil, otherID),
	}

	var err error
	require.NotPanics(t, func() {
		_, err = env.service.ProfileData(context.Background(), models.CallerIdentity{}, "Notch", "apple")
	})

	var selErr *SelectionError
	require.True(t, errors.As(err, &selErr))
	assert.Equal(t, NotMember, selErr.Kind)
	assert.Equal(t, "Apple", selErr.Name)

	title, hint := models.Describe(err)
	assert.Equal(t, "Error, that player is not a member of that profile!", title)
	assert.NotEqual(t, models.GenericErrorHint, hint)
}

func TestProfileDataNeverJoined(t *testing.T) {
	env := newTestEnv()
	delete(env.profiles.sets, otherID)

	_, err := env.service.ProfileData(context.Background(), models.CallerIdentity{}, "Dream", "")
	assert.True(t, IsNoProfiles(err))

	title, _ := models.Describe(err)
	assert.Equal(t, "That user has never joined Skyblock before!", title)
}

func TestProfileList(t *testing.T) {
	env := newTestEnv()

	listing, err := env.service.ProfileList(context.Background(), models.CallerIdentity{}, "Notch", "banana")
	require.NoError(t, err)
	assert.Equal(t, "Notch", listing.Player.DisplayName)
	assert.Equal(t, "banana", listing.ProfileHint)
	assert.Equal(t, []string{"Apple", "Banana"}, listing.Profiles.CuteNames())
}

func TestLinkRequiresName(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Link(context.Background(), models.CallerIdentity{ID: "1"}, "  ")
	assert.Equal(t, ErrMissingName, err)

	_, err = env.service.Link(context.Background(), models.CallerIdentity{ID: "1"}, "nobody")
	var idErr *identity.Error
	require.True(t, errors.As(err, &idErr))

	_, ok, _ := env.links.LinkedName(context.Background(), "1")
	assert.False(t, ok, "failed lookups must not be linked")
}

func TestProfileDataInvalidCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "cause": "Invalid API key"})
	}))
	defer server.Close()

	env := newTestEnv()
	env.service.Profiles = hypixel.NewClient(server.URL, "revoked", time.Second)

	_, err := env.service.ProfileData(context.Background(), models.CallerIdentity{}, "Notch", "")

	var fetchErr *hypixel.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, hypixel.InvalidCredential, fetchErr.Kind)
	assert.NotEqual(t, hypixel.Unavailable, fetchErr.Kind)
}
