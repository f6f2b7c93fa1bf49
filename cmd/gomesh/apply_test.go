package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gomesh/internal/config"
	"github.com/philipparndt/gomesh/pkg/mesh"
)

func TestApplyOperation(t *testing.T) {
	ops := config.Default().Operations

	tests := []struct {
		name     string
		op       string
		args     operationArgs
		vertices int
		faces    int
	}{
		{"extrude", "extrude", operationArgs{Faces: []int{0}, Height: 1}, 6, 8},
		{"inset", "inset", operationArgs{Faces: []int{0}, Inset: 0.1}, 6, 7},
		{"split", "split-edge", operationArgs{Vertices: []int{0, 1}}, 4, 2},
		{"duplicate", "duplicate-faces", operationArgs{Faces: []int{0}}, 6, 2},
		{"delete", "delete-faces", operationArgs{Faces: []int{0}}, 3, 0},
		{"weld", "weld", operationArgs{}, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mesh.NewDefault()
			summary, err := applyOperation(m, tt.op, tt.args, ops)
			require.NoError(t, err)
			assert.NotEmpty(t, summary)
			assert.Equal(t, tt.vertices, m.VertexCount())
			assert.Equal(t, tt.faces, m.FaceCount())
		})
	}
}

func TestApplyOperationErrors(t *testing.T) {
	ops := config.Default().Operations
	m := mesh.NewDefault()

	_, err := applyOperation(m, "lathe", operationArgs{}, ops)
	assert.ErrorContains(t, err, "unknown operation")

	_, err = applyOperation(m, "extrude", operationArgs{}, ops)
	assert.ErrorIs(t, err, errOperand)

	_, err = applyOperation(m, "merge", operationArgs{Vertices: []int{0}}, ops)
	assert.ErrorIs(t, err, errOperand)

	_, err = applyOperation(m, "extrude", operationArgs{Faces: []int{5}, Height: 1}, ops)
	assert.Error(t, err)

	assert.Equal(t, mesh.NewDefault().ToJSON(), m.ToJSON())
}
