package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/config"
	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/version"
)

var (
	configPath string
	verbose    bool
	cfg        = config.Default()
	logger     = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "gomesh",
	Short: "Build, edit and inspect triangle meshes",
	Long: `gomesh edits triangle meshes stored as JSON documents. It can create
primitives, apply editing operations, replay recorded interaction scripts,
run mesh-building scripts and convert between JSON, STL and OpenSCAD.`,
	Version:           version.GetFullVersion(),
	PersistentPreRunE: setup,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func ioOptions(ascii bool) meshio.Options {
	return meshio.Options{
		WeldEpsilon: cfg.Operations.WeldEpsilon,
		ASCII:       ascii,
		Logger:      logger,
	}
}

// fail prints the error and exits
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
