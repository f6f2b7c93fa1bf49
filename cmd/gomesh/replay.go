package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gomesh/internal/editor"
	"github.com/philipparndt/gomesh/internal/meshio"
	"github.com/philipparndt/gomesh/internal/session"
	"github.com/philipparndt/gomesh/pkg/mesh"
	"github.com/philipparndt/gomesh/pkg/viewer"
)

var (
	replayInput   string
	replayOutput  string
	replaySession string
	replayNew     bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [script.yaml]",
	Short: "Replay recorded pointer and keyboard events against a mesh",
	Long: `Replay a YAML script of editor events. Pointer positions are normalized
device coordinates of a camera framing the mesh. The mesh comes from --input,
from an autosaved session (--session or --new-session) or is the default triangle.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := replay(cmd.Context(), args[0]); err != nil {
			fail("%v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayInput, "input", "i", "", "Mesh file to edit")
	replayCmd.Flags().StringVarP(&replayOutput, "output", "o", "", "Write the result to this file")
	replayCmd.Flags().StringVarP(&replaySession, "session", "s", "", "Autosave key to edit")
	replayCmd.Flags().BoolVar(&replayNew, "new-session", false, "Start a fresh autosaved session")
	replayCmd.MarkFlagsMutuallyExclusive("input", "session", "new-session")
}

func replay(ctx context.Context, scriptPath string) (err error) {
	data, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script: %w", err)
	}
	script, err := editor.ParseScript(data)
	if err != nil {
		return err
	}

	var m *mesh.EditableMesh
	var sess *session.Session
	switch {
	case replaySession != "" || replayNew:
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		key := replaySession
		if replayNew {
			key = session.NewKey(cfg.Autosave.Key)
		}
		sess, err = session.Open(ctx, store, key, session.Options{
			Logger:   logger,
			Interval: cfg.Autosave.Interval,
		})
		if err != nil {
			return err
		}
		m = sess.Mesh()
	case replayInput != "":
		m, err = meshio.Load(ctx, replayInput, ioOptions(false))
		if err != nil {
			return err
		}
	default:
		m = mesh.NewDefault()
	}

	cam := viewer.NewCamera(m.Bounds())
	c := editor.New(m, cam, cfg, editor.Options{Logger: logger, Framer: cam})
	if sess != nil {
		sess.Bind(c)
		defer func() {
			err = errors.Join(err, sess.Close(ctx))
		}()
	}

	if err := c.Replay(script); err != nil {
		return err
	}
	m.Sync()
	fmt.Printf("Status: %s\n", c.Status())
	fmt.Printf("Mesh: %d vertices, %d faces, %d undo steps\n", m.VertexCount(), m.FaceCount(), c.History().UndoDepth())
	if sess != nil {
		fmt.Printf("Session: %s\n", sess.Key())
	}

	if replayOutput != "" {
		return meshio.Save(replayOutput, m, ioOptions(false))
	}
	return nil
}
