package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/EO-DataHub/eodhp-users-dashboard/api/handlers"
	"github.com/EO-DataHub/eodhp-users-dashboard/api/middleware"
	"github.com/EO-DataHub/eodhp-users-dashboard/api/services"
	"github.com/EO-DataHub/eodhp-users-dashboard/internal/appconfig"
	"github.com/EO-DataHub/eodhp-users-dashboard/internal/dashboard"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server for the dashboard",
	Run: func(cmd *cobra.Command, args []string) {

		// Set up logging and load the config
		setUp()
		appCfg, err := loadConfig()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		overridden := cmd.Flags().Changed("host") || cmd.Flags().Changed("port")
		if err := runServer(ctx, appCfg, listenAddr(appCfg, host, port, overridden)); err != nil {
			log.Fatal().Err(err).Msg("could not start server")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&host, "host", "0.0.0.0", "host to run the server on")
	serveCmd.Flags().IntVar(&port, "port", 8080, "port to run the server on")
}

// listenAddr prefers the --host/--port flags when either is set, then the
// configured host, then the flag defaults.
func listenAddr(appCfg *appconfig.Config, flagHost string, flagPort int, overridden bool) string {
	if !overridden && appCfg.Host != "" {
		return appCfg.Host
	}
	return fmt.Sprintf("%s:%d", flagHost, flagPort)
}

// runServer mounts the directory and serves it until ctx is done.
func runServer(ctx context.Context, appCfg *appconfig.Config, addr string) error {
	directory := newDirectory(appCfg)
	directory.Mount(ctx)
	defer directory.Unmount()

	server := &http.Server{
		Addr:              addr,
		Handler:           newRouter(directory, appCfg),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Msg(fmt.Sprintf("Server started at %s", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newDirectory(appCfg *appconfig.Config) *dashboard.Directory {
	log.Info().Str("source", appCfg.Source.URL).Msgf("Using source '%s'...", appCfg.Source.URL)
	client := services.NewSourceClient(appCfg.Source.URL, appCfg.Source.Timeout)

	logger := log.With().Str("component", "directory").Logger()
	return dashboard.NewDirectory(client, appCfg.Dashboard.PageSize, &logger)
}

func newRouter(d handlers.Dashboard, appCfg *appconfig.Config) *mux.Router {
	r := mux.NewRouter()

	// Register the routes
	api := r.PathPrefix(path.Join("/", appCfg.BasePath)).Subrouter()

	// Apply the middleware to the dashboard routes
	api.Use(middleware.WithLogger)

	// Page and state
	api.HandleFunc("/", handlers.GetDashboard(d, appCfg.Dashboard.Title, appCfg.BasePath)).Methods(http.MethodGet)
	api.HandleFunc("/state", handlers.GetDashboardState(d)).Methods(http.MethodGet)

	// Transitions
	api.HandleFunc("/users/{user-id}/posts", handlers.SelectUser(d, appCfg.BasePath)).Methods(http.MethodPost)
	api.HandleFunc("/overlay/close", handlers.CloseOverlay(d, appCfg.BasePath)).Methods(http.MethodPost)
	api.HandleFunc("/pages/{page}", handlers.Paginate(d, appCfg.BasePath)).Methods(http.MethodPost)

	return r
}
