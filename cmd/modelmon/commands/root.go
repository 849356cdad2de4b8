package commands

import (
	"strings"
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"modelmon/internal/backend"
	"modelmon/internal/config"
	"modelmon/internal/logging"
	"modelmon/internal/web"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose    bool
	listenAddr string
	forceMock  bool
	openUI     bool

	cfg *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "modelmon",
	Short: "modelmon serves the model-monitoring dashboard",
	Long: `A self-contained dashboard for credit and fraud risk model performance
monitoring. It consumes the metrics backend API and transparently falls
back to built-in demo fixtures when the backend is unreachable.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load configuration")
		}
		if cmd.Flags().Changed("listen") {
			cfg.ListenAddr = listenAddr
		}
		if forceMock {
			cfg.ForceMock = true
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("modelmon starting")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		live := backend.NewLiveSource(backend.LiveConfig{BaseURL: cfg.APIBase})
		mock := backend.NewMockSource(cfg.MockDelayScale)
		fb := backend.NewFallbackSource(live, mock, cfg.ForceMock)

		server, err := web.New(fb, fb)
		if err != nil {
			return err
		}

		if openUI {
			go func() {
				// Give the listener a moment before pointing the browser at it.
				time.Sleep(300 * time.Millisecond)
				if err := browser.OpenURL(dashboardURL(cfg.ListenAddr)); err != nil {
					log.Warn().Err(err).Msg("Could not open the dashboard in a browser")
				}
			}()
		}
		return server.ListenAndServe(cfg.ListenAddr)
	},
}

// dashboardURL turns a bind address into something a browser can open.
func dashboardURL(addr string) string {
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "127.0.0.1" + host
	}
	return "http://" + host
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&listenAddr, "listen", ":8080", "dashboard listen address")
	rootCmd.Flags().BoolVar(&forceMock, "mock", false, "serve demo fixtures without contacting the backend")
	rootCmd.Flags().BoolVar(&openUI, "open", false, "open the dashboard in the default browser")
}
