package hypixel

// Constant API endpoints
const (
	DefaultBaseURL   = "https://api.hypixel.net"
	ProfilesEndpoint = "/skyblock/profiles"
)

// InvalidAPIKeyCause is the cause reported by the API when the key was rejected.
const InvalidAPIKeyCause = "Invalid API key"
