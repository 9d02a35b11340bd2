package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"swaig/internal/config"
	"swaig/internal/demo"
	"swaig/internal/logging"
	"swaig/internal/server"
	"swaig/internal/swaig"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bundled tools on /swaig",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, currentConfig)
		},
	}
	flags := cmd.Flags()
	flags.String("port", "3000", "listen port")
	flags.String("public-host", "", "host advertised in web_hook_url (defaults to the request host)")
	flags.Bool("strict", false, "reject duplicate tool registrations")
	flags.Bool("validate-arguments", false, "validate arguments against the tool schema before calling")
	_ = v.BindPFlag("port", flags.Lookup("port"))
	_ = v.BindPFlag("public_host", flags.Lookup("public-host"))
	_ = v.BindPFlag("strict", flags.Lookup("strict"))
	_ = v.BindPFlag("validate_arguments", flags.Lookup("validate-arguments"))
	return cmd
}

// buildDispatcher registers the bundled tools according to cfg.
func buildDispatcher(cfg config.Config) (*swaig.Dispatcher, *swaig.Registry, error) {
	var regOpts []swaig.RegistryOption
	if cfg.Strict {
		regOpts = append(regOpts, swaig.WithStrict())
	}
	reg := swaig.NewRegistry(regOpts...)
	if err := demo.Register(reg); err != nil {
		return nil, nil, err
	}
	var dispOpts []swaig.DispatcherOption
	if cfg.ValidateArguments {
		dispOpts = append(dispOpts, swaig.WithSchemaValidation())
	}
	return swaig.NewDispatcher(reg, dispOpts...), reg, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	dispatcher, reg, err := buildDispatcher(cfg)
	if err != nil {
		return err
	}
	srv := server.New(server.Config{
		Username:       cfg.Username,
		Password:       cfg.Password,
		PublicHost:     cfg.PublicHost,
		RequestTimeout: cfg.RequestTimeout(),
	}, dispatcher)

	if !cfg.AuthEnabled() {
		logging.Warnf("username/password not set; %s will be open. Set SWAIG_USERNAME and SWAIG_PASSWORD to secure.", server.SWAIGPath)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logging.Infof("serving %d tools on :%s%s", reg.Len(), cfg.Port, server.SWAIGPath)
		if cfg.TLSEnabled() {
			logging.Infof("TLS enabled: using provided certificate and key")
			errCh <- httpServer.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
			return
		}
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logging.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
