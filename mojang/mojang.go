package mojang

// Default Mojang endpoints. The lookup paths are appended to these.
const (
	DefaultAPIURL     = "https://api.mojang.com"
	DefaultSessionURL = "https://sessionserver.mojang.com"

	nameLookupPathFmt = "/users/profiles/minecraft/%s"
	idLookupPathFmt   = "/session/minecraft/profile/%s"
)

// Player is the body returned by both lookup endpoints.
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
