package cli

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/josemlopez/Write-Properly/internal/server"
	"github.com/josemlopez/Write-Properly/internal/writer"
	"github.com/josemlopez/Write-Properly/internal/ws"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI",
	Long: `Start the web UI and JSON API.

Routes:
  GET  /              the form
  GET  /api/options   function, mood and verbosity labels
  POST /api/run       run one request
  GET  /health        liveness
  GET  /metrics       Prometheus metrics
  /socket.io/         Socket.IO endpoint (event "write:run")

Examples:
  writeproperly serve
  writeproperly serve --port 3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	// Bare writeproperly serves too, so it takes the same flag.
	for _, fs := range []*pflag.FlagSet{serveCmd.Flags(), rootCmd.Flags()} {
		fs.StringVar(&servePort, "port", "", "Port to listen on (overrides PORT env var)")
	}
	rootCmd.RunE = runServe
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	provider, err := newProvider(cfg)
	if err != nil {
		return err
	}

	sessions := writer.NewSessions(cfg.SessionTTL)
	defer sessions.Close()
	d := writer.NewDispatcher(provider, cfg.Sampling).WithSessions(sessions)

	gin.SetMode(gin.ReleaseMode)
	opts := server.Options{
		Dispatcher:     d,
		UIUser:         cfg.UIUser,
		UIPass:         cfg.UIPass,
		SessionTTL:     cfg.SessionTTL,
		RequestTimeout: cfg.RequestTimeout,
	}
	r := server.Router(opts)
	io := ws.New(d, sessions, cfg.RequestTimeout).Mount(r.Group("/", opts.Auth()...))
	defer io.Close()

	log.Info().
		Str("port", cfg.Port).
		Str("provider", cfg.Provider).
		Bool("basicAuth", cfg.BasicAuth()).
		Msg("listening")
	return r.Run(":" + cfg.Port)
}
