package main

import (
	"context"
	"flag"
	"net/http"
	"time"

	raven "github.com/getsentry/raven-go"
	"github.com/kpango/glg"
	"github.com/mikeflynn/go-alexa/skillserver"

	"github.com/rking788/skyblock-helper/alexa"
	"github.com/rking788/skyblock-helper/dialogflow"
	"github.com/rking788/skyblock-helper/hypixel"
	"github.com/rking788/skyblock-helper/identity"
	"github.com/rking788/skyblock-helper/mojang"
	"github.com/rking788/skyblock-helper/skyblock"
	"github.com/rking788/skyblock-helper/storage"
)

// AlexaHandlers are the handler functions mapped by the intent name that they should handle.
var (
	AlexaHandlers = map[string]alexa.Handler{
		"PlayerProfile":     alexa.CallerWrapper(alexa.PlayerProfile),
		"ListProfiles":      alexa.CallerWrapper(alexa.ListProfiles),
		"LinkAccount":       alexa.CallerWrapper(alexa.LinkAccount),
		"UnlinkAccount":     alexa.CallerWrapper(alexa.UnlinkAccount),
		"AMAZON.HelpIntent": alexa.HelpPrompt,
	}
)

var configPath = flag.String("config", "", "path to the environment configuration file")

// Applications is a definition of the Alexa applications running on this server.
var applications map[string]interface{}

// config is the environment configuration for this specific deployment of the server
var config *EnvConfig

// closers release the resources opened by InitEnv.
var closers []func() error

// InitEnv is responsible for initializing all components (including sub-packages) that
// depend on a specific deployment environment configuration.
func InitEnv(c *EnvConfig) {
	applications = map[string]interface{}{
		"/echo/skyblock-helper": skillserver.EchoApplication{ // Route
			AppID:          c.AlexaAppID, // Echo App ID from Amazon Dashboard
			OnIntent:       EchoIntentHandler,
			OnLaunch:       EchoIntentHandler,
			OnSessionEnded: EchoSessionEndedHandler,
		},
		"/dialogflow": skillserver.StdApplication{
			Methods: "POST",
			Handler: dialogflow.WebhookHandler,
		},
		"/health": skillserver.StdApplication{
			Methods: "GET",
			Handler: healthHandler,
		},
	}

	ConfigureLogging(c.LogLevel, c.LogFilePath)
	raven.SetDSN(c.SentryDSN)

	links := linkStore(c)
	lookup := mojang.NewClient(c.MojangAPIURL, c.MojangSessionURL, c.UpstreamTimeout)
	profiles := hypixel.NewClient(c.HypixelAPIURL, c.HypixelAPIKey, c.UpstreamTimeout)
	service := skyblock.NewService(identity.NewResolver(lookup, links), profiles, links)

	// Each surface gets a little longer than two upstream calls.
	requestTimeout := 2*c.UpstreamTimeout + time.Second
	alexa.InitEnv(service, requestTimeout)
	dialogflow.InitEnv(service, requestTimeout)
}

// linkStore picks the linked account store for the configured backends. Postgres
// is the durable store, redis caches it, and without either links only live as
// long as the process.
func linkStore(c *EnvConfig) storage.LinkedAccountStore {

	var cache *storage.Cache
	if c.RedisURL != "" {
		cache = storage.NewCache(c.RedisURL, c.LinkCacheTTL)
		closers = append(closers, cache.Close)
	}

	if c.DatabaseURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		db, err := storage.NewLinkDB(ctx, c.DatabaseURL)
		if err != nil {
			glg.Fatalf("Failed to initialize the linked accounts database: %s", err.Error())
		}
		closers = append(closers, db.Close)

		if cache != nil {
			return &storage.LayeredLinks{Cache: cache, Durable: db}
		}
		return db
	}

	if cache != nil {
		return cache
	}

	glg.Warn("No DATABASE_URL or REDIS_URL configured, linked accounts are kept in memory")
	return storage.NewMemoryLinks()
}

func main() {

	flag.Parse()

	config = loadConfig(configPath)

	glg.Infof("Loaded config for environment %s on port %s", config.Environment, config.Port)
	InitEnv(config)

	defer CloseLogger()
	defer func() {
		for _, closer := range closers {
			if err := closer(); err != nil {
				glg.Warnf("Failed to close resource: %s", err.Error())
			}
		}
	}()

	glg.Printf("Version=%s, BuildDate=%v", Version, BuildDate)

	if config.Environment == "production" {
		port := ":" + config.Port
		err := skillserver.RunSSL(applications, port, config.SSLCertPath, config.SSLKeyPath)
		if err != nil {
			raven.CaptureError(err, nil)
			glg.Errorf("Error starting the application! : %s", err.Error())
		}
	} else {
		// Heroku makes us read a random port from the environment and our app is a
		// subdomain of theirs so we get SSL for free
		skillserver.Run(applications, config.Port)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Up"))
}

// Alexa skill related functions

// EchoSessionEndedHandler is responsible for acknowledging the end of a session.
func EchoSessionEndedHandler(echoRequest *skillserver.EchoRequest, echoResponse *skillserver.EchoResponse) {
	*echoResponse = *skillserver.NewEchoResponse()
}

// EchoIntentHandler is a handler method that is responsible for receiving the
// call from a Alexa command and returning the correct speech or cards.
func EchoIntentHandler(echoRequest *skillserver.EchoRequest, echoResponse *skillserver.EchoResponse) {

	// Time the intent handler to determine if it is taking longer than normal
	startTime := time.Now()
	defer func(start time.Time) {
		glg.Successf("IntentHandler execution time: %v", time.Since(start))
	}(startTime)

	*echoResponse = *dispatchIntent(echoRequest)
}

func dispatchIntent(echoRequest *skillserver.EchoRequest) *skillserver.EchoResponse {

	intentName := echoRequest.GetIntentName()
	glg.Infof("RequestType: %s, IntentName: %s", echoRequest.GetRequestType(), intentName)

	handler, ok := AlexaHandlers[intentName]
	switch {
	case echoRequest.GetRequestType() == "LaunchRequest":
		return alexa.WelcomePrompt(echoRequest)
	case intentName == "AMAZON.StopIntent", intentName == "AMAZON.CancelIntent":
		return skillserver.NewEchoResponse()
	case ok:
		return handler(echoRequest)
	}

	response := skillserver.NewEchoResponse()
	response.OutputSpeech("Sorry, I did not understand your request.")
	return response
}
