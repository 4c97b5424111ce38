package app

import (
	"fmt"
	"os"

	genericapiserver "k8s.io/apiserver/pkg/server"

	"github.com/autopeer-io/edfsizer/cmd/edfsizer/app/options"
	"github.com/autopeer-io/edfsizer/internal/sizer/render"
	"github.com/autopeer-io/edfsizer/pkg/app"
	"github.com/autopeer-io/edfsizer/pkg/log"
)

const (
	commandName = "edfsizer"
	commandDesc = `edfsizer searches EDF, ESC and battery catalogs for drone powertrains that
can lift themselves with margin, and prints every valid combination or only the
Pareto optimal trade-offs between payload and fly time.`
)

func NewApp() *app.App {
	opts := options.NewSizerOptions()
	application := app.NewApp(
		commandName,
		"Size an EDF drone powertrain",
		app.WithDescription(commandDesc),
		app.WithOptions(opts),
		app.WithDefaultValidArgs(),
		app.WithRunFunc(run(opts)),
	)
	return application
}

func run(opts *options.SizerOptions) app.RunFunc {
	return func() error {
		log.Init(opts.Log)
		ctx := log.IntoContext(genericapiserver.SetupSignalContext(), log.Std())

		query, err := opts.Query()
		if err != nil {
			return err
		}

		cfg, err := opts.Config()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		svc, err := cfg.NewService(ctx)
		if err != nil {
			return fmt.Errorf("failed to create service: %w", err)
		}

		res, err := svc.Evaluate(ctx)
		if err != nil {
			log.Error(err, "Evaluation failed")
			return err
		}

		specs := res.Candidates
		if opts.OutputOptions.FrontierOnly {
			specs = res.Frontier
		}
		return render.Write(os.Stdout, opts.OutputOptions.Format, query.Apply(specs))
	}
}
