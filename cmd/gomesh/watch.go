package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/internal/metrics"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/script"
	"github.com/philipparndt/gomesh/pkg/watcher"
)

var (
	watchDebounce    time.Duration
	watchMetricsAddr string
	watchASCII       bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [input] [output]",
	Short: "Rebuild a mesh file whenever its source changes",
	Long: `Watch a source and rewrite output on every change. The source may be a
mesh file, an OpenSCAD file (including the files it uses) or a zygomys
script (.zy) run against the default triangle.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := watch(cmd.Context(), args[0], args[1]); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Delay after the last change before rebuilding")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090")
	watchCmd.Flags().BoolVar(&watchASCII, "ascii", false, "Write ASCII STL")
}

func isScript(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".zy")
}

func build(ctx context.Context, input string) (*mesh.EditableMesh, error) {
	if !isScript(input) {
		return meshio.Load(ctx, input, ioOptions(false))
	}
	source, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	res, err := script.NewRunner().Run(string(source), mesh.NewDefault())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}
	return res.Mesh, nil
}

func rebuild(ctx context.Context, input, output string) error {
	start := time.Now()
	m, err := build(ctx, input)
	if err != nil {
		return err
	}
	buffers := m.Sync()
	metrics.ObserveSync(time.Since(start), buffers.TriangleCount())
	if err := meshio.Save(output, m, ioOptions(watchASCII)); err != nil {
		return err
	}
	logger.Info("rebuilt", "output", output, "vertices", m.VertexCount(), "faces", m.FaceCount(), "took", time.Since(start))
	return nil
}

func serveMetrics(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()
}

func watch(ctx context.Context, input, output string) error {
	if watchMetricsAddr != "" {
		serveMetrics(ctx, watchMetricsAddr)
	}

	files := []string{input}
	if !isScript(input) {
		deps, err := meshio.Dependencies(input)
		if err != nil {
			return err
		}
		files = deps
	}

	fw, err := watcher.NewFileWatcher(watchDebounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	// rebuilds are serialized; a change during a rebuild triggers another
	var mu sync.Mutex
	onChange := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if err := rebuild(ctx, input, output); err != nil {
			logger.Error("rebuild failed", "changed", path, "error", err)
		}
	}
	if err := fw.Watch(files, onChange); err != nil {
		return err
	}

	if err := rebuild(ctx, input, output); err != nil {
		logger.Error("initial build failed", "error", err)
	}
	fw.Start(ctx)
	logger.Info("watching", "files", len(files), "output", output)

	<-ctx.Done()
	return nil
}
