package ecs_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

type AI struct {
	State int
}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string
type Temperature float64

type Inventory struct {
	Items []string
}

// Handle counts its releases so tests can observe teardown.
type Handle struct {
	ID       int
	released *int
}

func (h *Handle) Release() {
	if h.released != nil {
		*h.released++
	}
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[PlayerController](registry)
	ecs.RegisterComponent[AI](registry)
	ecs.RegisterComponent[Score](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Temperature](registry)
	ecs.RegisterComponent[Inventory](registry)
	return registry
}

// newLoggedScene returns a scene whose info and higher log output is captured
// in the returned buffer.
func newLoggedScene(opts ...ecs.Option) (*ecs.Scene, *bytes.Buffer) {
	var buf bytes.Buffer
	opts = append(opts, ecs.WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))
	return ecs.NewScene(opts...), &buf
}

// logLines decodes every JSON log line written to buf.
func logLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(buf.String(), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		lines = append(lines, entry)
	}
	return lines
}
