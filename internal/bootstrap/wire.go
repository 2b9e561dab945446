//go:build wireinject

package bootstrap

import (
	httpserver "cnythb-converter/internal/infrastructure/http"

	"github.com/google/wire"
)

var rateSet = wire.NewSet(
	ProvideLogger,
	ProvideConfig,
	ProvideHTTPClient,
	ProvideRateProvider,
	ProvideRateConverter,
)

// InitAPI builds the HTTP server.
func InitAPI() (*httpserver.Server, error) {
	wire.Build(
		rateSet,
		ProvideDefaults,
		ProvideReadyCheck,
		ProvideServer,
	)
	return nil, nil
}

// InitTerminal builds the interactive form.
func InitTerminal() (*TerminalApp, error) {
	wire.Build(
		rateSet,
		ProvideSessionConfig,
		ProvideOutput,
		ProvideForm,
		ProvideEventLoop,
		ProvideSession,
		ProvideTerminalApp,
	)
	return nil, nil
}
