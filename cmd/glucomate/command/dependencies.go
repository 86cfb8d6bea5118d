package command

import (
	"net/http"

	"github.com/glucomate-org/glucomate/api"
	"github.com/glucomate-org/glucomate/auth"
	"github.com/glucomate-org/glucomate/chat"
	"github.com/glucomate-org/glucomate/config"
	"github.com/glucomate-org/glucomate/logger"
	"github.com/glucomate-org/glucomate/profile"
	"github.com/glucomate-org/glucomate/session"
	"github.com/glucomate-org/glucomate/speech"
	"go.uber.org/fx"
)

func httpClientProvider() *http.Client {
	return &http.Client{}
}

func clientProvider(cfg *config.Config, httpClient *http.Client, sessions session.Store) (*api.Client, error) {
	return api.NewClientBuilder().
		WithHost(cfg.ApiHost).
		WithHttpClient(httpClient).
		WithSessionStore(sessions).
		WithTimeout(cfg.RequestTimeout).
		Build()
}

// Dependencies is the full client DI graph. Commands run against it with
// fxutil.OneShot.
func Dependencies() []fx.Option {
	return []fx.Option{
		fx.Provide(
			config.NewFromEnv,
			logger.NewProductionLogger,
			logger.Suggar,
			httpClientProvider,
			clientProvider,
			session.NewStore,
			session.NewDeriver,
			profile.NewRepository,
			profile.NewService,
			profile.NewEditor,
			auth.NewService,
			chat.NewService,
			speech.NewRecognizer,
		),
	}
}
