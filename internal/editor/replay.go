package editor

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/philipparndt/gomesh/pkg/picking"
)

// ErrInvalidStep is returned for a replay step that cannot be dispatched
var ErrInvalidStep = errors.New("invalid replay step")

// Step is one recorded input. Exactly one of Key, Pointer, Tool or Mode is
// set.
type Step struct {
	Key     string  `yaml:"key,omitempty"`
	Target  string  `yaml:"target,omitempty"`
	Pointer string  `yaml:"pointer,omitempty"` // down, move or up
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	Tool    string  `yaml:"tool,omitempty"`
	Mode    string  `yaml:"mode,omitempty"`
	Shift   bool    `yaml:"shift,omitempty"`
	Ctrl    bool    `yaml:"ctrl,omitempty"`
	Meta    bool    `yaml:"meta,omitempty"`
	Alt     bool    `yaml:"alt,omitempty"`
}

// Script is a recorded sequence of inputs
type Script struct {
	Steps []Step `yaml:"steps"`
}

// ParseScript reads a YAML replay script
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse replay script: %w", err)
	}
	return s, nil
}

func (s Step) modifiers() Modifiers {
	return Modifiers{Shift: s.Shift, Ctrl: s.Ctrl, Meta: s.Meta, Alt: s.Alt}
}

// Replay dispatches every step of the script in order. It stops at the first
// step that cannot be dispatched.
func (c *Controller) Replay(script Script) error {
	for i, step := range script.Steps {
		if err := c.dispatch(step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	c.logger.Info("replay finished",
		"steps", len(script.Steps),
		"vertices", c.mesh.VertexCount(),
		"faces", c.mesh.FaceCount(),
		"status", c.status)
	return nil
}

func (c *Controller) dispatch(step Step) error {
	switch {
	case step.Key != "":
		c.KeyDown(KeyEvent{Key: step.Key, Target: step.Target, Modifiers: step.modifiers()})
	case step.Pointer != "":
		ev := PointerEvent{Position: picking.NDC{X: step.X, Y: step.Y}, Modifiers: step.modifiers()}
		switch step.Pointer {
		case "down":
			c.PointerDown(ev)
		case "move":
			c.PointerMove(ev)
		case "up":
			c.PointerUp(ev)
		default:
			return fmt.Errorf("%w: unknown pointer action %q", ErrInvalidStep, step.Pointer)
		}
	case step.Tool != "":
		tool, ok := ParseTool(step.Tool)
		if !ok {
			return fmt.Errorf("%w: unknown tool %q", ErrInvalidStep, step.Tool)
		}
		c.SetTool(tool)
	case step.Mode != "":
		mode, ok := parseMode(step.Mode)
		if !ok {
			return fmt.Errorf("%w: unknown mode %q", ErrInvalidStep, step.Mode)
		}
		c.SetMode(mode)
	default:
		return fmt.Errorf("%w: empty step", ErrInvalidStep)
	}
	return nil
}

func parseMode(name string) (picking.Mode, bool) {
	for _, m := range []picking.Mode{picking.ModeVertex, picking.ModeEdge, picking.ModeFace} {
		if m.String() == name {
			return m, true
		}
	}
	return picking.ModeVertex, false
}
