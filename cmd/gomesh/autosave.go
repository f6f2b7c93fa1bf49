package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/internal/session"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

var autosaveCmd = &cobra.Command{
	Use:   "autosave",
	Short: "Inspect and manage autosaved sessions",
}

var autosaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List autosaved sessions",
	Args:  cobra.NoArgs,
	Run:   runAutosaveList,
}

var autosaveExportCmd = &cobra.Command{
	Use:   "export [key] [file]",
	Short: "Write an autosaved session to a mesh file",
	Args:  cobra.ExactArgs(2),
	Run:   runAutosaveExport,
}

var autosaveDeleteCmd = &cobra.Command{
	Use:   "delete [key]",
	Short: "Delete an autosaved session",
	Args:  cobra.ExactArgs(1),
	Run:   runAutosaveDelete,
}

func init() {
	rootCmd.AddCommand(autosaveCmd)
	autosaveCmd.AddCommand(autosaveListCmd, autosaveExportCmd, autosaveDeleteCmd)
}

func openStore() (*session.BadgerStore, error) {
	return session.OpenStore(session.StoreOptions{
		Path:   cfg.Autosave.Path,
		Logger: logger.With("component", "badger"),
	})
}

func withStore(fn func(store *session.BadgerStore) error) {
	store, err := openStore()
	if err != nil {
		fail("%v", err)
	}
	err = fn(store)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("failed to close store", "error", closeErr)
	}
	if err != nil {
		fail("%v", err)
	}
}

func loadSaved(ctx context.Context, store *session.BadgerStore, key string) (*mesh.EditableMesh, error) {
	doc, err := store.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	return mesh.FromDocument(doc)
}

func runAutosaveList(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	withStore(func(store *session.BadgerStore) error {
		keys, err := store.Keys(ctx, cfg.Autosave.Key)
		if err != nil {
			return err
		}
		if len(keys) == 0 {
			fmt.Println("No autosaved sessions.")
			return nil
		}
		fmt.Printf("%-60s %-10s %s\n", "Key", "Vertices", "Faces")
		for _, key := range keys {
			m, err := loadSaved(ctx, store, key)
			if err != nil {
				fmt.Printf("%-60s unreadable: %v\n", key, err)
				continue
			}
			fmt.Printf("%-60s %-10d %d\n", key, m.VertexCount(), m.FaceCount())
		}
		return nil
	})
}

func runAutosaveExport(cmd *cobra.Command, args []string) {
	key, output := args[0], args[1]
	withStore(func(store *session.BadgerStore) error {
		m, err := loadSaved(cmd.Context(), store, key)
		if err != nil {
			return err
		}
		if err := meshio.Save(output, m, ioOptions(false)); err != nil {
			return err
		}
		fmt.Printf("Exported %s to %s\n", key, output)
		return nil
	})
}

func runAutosaveDelete(cmd *cobra.Command, args []string) {
	ctx := cmd.Context()
	withStore(func(store *session.BadgerStore) error {
		if _, err := store.Load(ctx, args[0]); errors.Is(err, session.ErrNotFound) {
			return err
		}
		if err := store.Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", args[0])
		return nil
	})
}
