package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/opsintake/incident-wizard/pkg/cli/config"
	httpctrl "github.com/opsintake/incident-wizard/pkg/controller/http"
	"github.com/opsintake/incident-wizard/pkg/usecase"
	"github.com/opsintake/incident-wizard/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var geminiCfg config.Gemini
	var snowCfg config.ServiceNow
	var intakeCfg config.Intake
	var slackCfg config.Slack

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("INCIDENT_WIZARD_ADDR"),
			Destination: &addr,
		},
	}
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, snowCfg.Flags()...)
	flags = append(flags, intakeCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := buildUseCases(ctx, &geminiCfg, &snowCfg, &intakeCfg, &slackCfg)
			if err != nil {
				return err
			}

			handler := httpctrl.New(uc)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}

// buildUseCases wires the external collaborators into the use case set
func buildUseCases(ctx context.Context, geminiCfg *config.Gemini, snowCfg *config.ServiceNow, intakeCfg *config.Intake, slackCfg *config.Slack) (*usecase.UseCases, error) {
	llmClient, err := geminiCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure LLM client")
	}

	ticketing, err := snowCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure ticketing client")
	}

	cfg, err := intakeCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure intake pipeline")
	}

	var ucOpts []usecase.Option
	notifier, err := slackCfg.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Slack notifier")
	}
	if notifier != nil {
		ucOpts = append(ucOpts, usecase.WithSlackNotifier(notifier))
		logging.Default().Info("Slack notifications enabled")
	}

	logging.Default().Info("Intake pipeline configured",
		"variant", cfg.Variant,
		"threshold", cfg.DuplicateThreshold,
		"candidate_limit", cfg.CandidateLimit,
	)

	return usecase.New(llmClient, ticketing, cfg, ucOpts...), nil
}
