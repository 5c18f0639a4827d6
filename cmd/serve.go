package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/server"
	"github.com/syd18b/mvp-search/internal/theme"
)

var serverPort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the site analyzer locally",
	Long: `The serve command starts a local web server hosting the search panel.
Enter a site manifest URL to render its overview and item cards. When theme
files are configured they are watched and reloaded on change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(appConfig, log)
		if err != nil {
			return err
		}

		port := appConfig.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		srv := server.New(server.Config{
			Port:         port,
			Debug:        debug,
			ReadTimeout:  appConfig.Server.ReadTimeout,
			WriteTimeout: appConfig.Server.WriteTimeout,
		}, server.NewHandler(a.panel, a.renderer, log), log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return srv.Run(ctx)
		})
		g.Go(func() error {
			files := []string{appConfig.Theme.Document, appConfig.Theme.Catalog}
			return theme.Watch(ctx, files, theme.DefaultDebounce,
				func() (theme.Provider, error) { return loadTheme(appConfig) },
				a.renderer.SetTheme,
				log.With(logger.String("component", "theme")),
			)
		})
		log.Info("Site analyzer ready", logger.Int("port", port))
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 1313, "Port to serve the analyzer on")
	rootCmd.AddCommand(serveCmd)
}
