package app

import (
	"fmt"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/edfsizer/cmd/edfsizer-server/app/options"
	"github.com/autopeer-io/edfsizer/pkg/app"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

const (
	commandName = "edfsizer-server"
	commandDesc = `The edfsizer server evaluates the powertrain catalogs on startup and on
every reload, and serves the candidates and the Pareto frontier over HTTP.`
)

func NewApp() *app.App {
	opts := options.NewServerOptions()
	application := app.NewApp(
		commandName,
		"Launch the edfsizer API server",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithEnvPrefix("EDFSIZER"),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.ServerOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		ctx := log.IntoContext(genericapiserver.SetupSignalContext(), log.Std())

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		srv, err := cfg.NewServer(ctx)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		return srv.Run(ctx)
	}
}
