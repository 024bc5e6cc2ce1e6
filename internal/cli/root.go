package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"jelly/internal/config"
	"jelly/internal/logging"
	"jelly/internal/server"
	"jelly/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags
var Version = "dev"

var (
	configPath  string
	logLevel    string
	logOutput   string
	templates   string
	staticDir   string
	showVersion bool
)

func init() {
	RootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "Print version information and quit")
	RootCmd.Flags().StringVarP(&configPath, "config", "c", "config.json", "Path to the settings file (.json, .yaml or .yml)")
	RootCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	RootCmd.Flags().StringVar(&logOutput, "log-output", "stdout", "Log output: stdout, stderr or a file path")
	RootCmd.Flags().StringVar(&templates, "templates", "./web/templates/*.html", "Glob of HTML templates")
	RootCmd.Flags().StringVar(&staticDir, "static", "./web/static", "Directory served under /static")
}

// RootCmd runs the dashboard server
var RootCmd = &cobra.Command{
	Use:          "jelly",
	Short:        "Local system-monitoring dashboard",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Println(Version)
			return nil
		}
		return serve(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	if err := logging.Configure(logOutput, logLevel); err != nil {
		return err
	}
	log := logging.For("main")

	store := config.NewStore(configPath)
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	if debugEnabled() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	opts := server.Options{
		Secret:        os.Getenv("JELLY_SECRET"),
		TemplatesGlob: templates,
	}
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		opts.StaticDir = staticDir
	}

	srv := server.New(store, services.NewGopsutilProvider(), opts)
	log.Infof("Settings file: %s", store.Path())

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx, cfg.Addr())
}

func debugEnabled() bool {
	switch os.Getenv("JELLY_DEBUG") {
	case "1", "true", "True":
		return true
	}
	return false
}
