package loader_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/plus3/scene/ecs"
	"github.com/plus3/scene/ecs/loader"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct {
	X, Y float64
}

type Sprite struct {
	Path  string
	Layer int
}

type Tags struct {
	Values []string
}

const sceneSource = `
[[entity]]
[entity.Position]
X = 1.5
Y = -2.0
[entity.Sprite]
Path = "player.png"
Layer = 3

[[entity]]
[entity.Position]
X = 10.0

[[entity]]
[entity.tags]
Values = ["static", "wall"]
`

func newLoader(opts ...loader.Option) *loader.Loader {
	l := loader.New(opts...)
	loader.Register[Position](l, "")
	loader.Register[Sprite](l, "")
	loader.Register[Tags](l, "tags")
	return l
}

func TestLoad(t *testing.T) {
	t.Run("creates entities with decoded components", func(t *testing.T) {
		scene := ecs.NewScene()
		ids, err := newLoader().Load(scene, strings.NewReader(sceneSource))
		require.NoError(t, err)
		require.Len(t, ids, 3)
		assert.Equal(t, 3, scene.Len())

		pos, ok := ecs.Get[Position](scene, ids[0])
		require.True(t, ok)
		assert.Equal(t, Position{X: 1.5, Y: -2}, *pos)

		sprite, ok := ecs.Get[Sprite](scene, ids[0])
		require.True(t, ok)
		assert.Equal(t, Sprite{Path: "player.png", Layer: 3}, *sprite)

		pos, ok = ecs.Get[Position](scene, ids[1])
		require.True(t, ok)
		assert.Equal(t, Position{X: 10}, *pos)
		assert.False(t, ecs.Has[Sprite](scene, ids[1]))

		tags, ok := ecs.Get[Tags](scene, ids[2])
		require.True(t, ok)
		assert.Equal(t, []string{"static", "wall"}, tags.Values)
	})

	t.Run("registered names", func(t *testing.T) {
		assert.Equal(t, []string{"Position", "Sprite", "tags"}, newLoader().Components())
	})

	t.Run("empty scene", func(t *testing.T) {
		scene := ecs.NewScene()
		ids, err := newLoader().Load(scene, strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("unknown component rolls back", func(t *testing.T) {
		scene := ecs.NewScene()
		src := sceneSource + "\n[[entity]]\n[entity.Collider]\nRadius = 2.0\n"

		ids, err := newLoader().Load(scene, strings.NewReader(src))
		assert.ErrorIs(t, err, loader.ErrUnknownComponent)
		assert.Nil(t, ids)
		assert.Equal(t, 0, scene.Len())
	})

	t.Run("type mismatch", func(t *testing.T) {
		scene := ecs.NewScene()
		_, err := newLoader().Load(scene, strings.NewReader("[[entity]]\n[entity.Sprite]\nLayer = \"top\"\n"))
		assert.Error(t, err)
		assert.Equal(t, 0, scene.Len())
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := newLoader().Load(ecs.NewScene(), strings.NewReader("[[entity"))
		assert.Error(t, err)
	})

	t.Run("undecoded keys warn", func(t *testing.T) {
		var buf bytes.Buffer
		l := newLoader(loader.WithLogger(zerolog.New(&buf)))
		scene := ecs.NewScene()

		ids, err := l.Load(scene, strings.NewReader("[[entity]]\n[entity.Position]\nX = 1.0\nZ = 3.0\n"))
		require.NoError(t, err)
		assert.Len(t, ids, 1)
		assert.Contains(t, buf.String(), "undecoded")
		assert.Contains(t, buf.String(), "Z")
	})

	t.Run("undecoded keys fail in strict mode", func(t *testing.T) {
		scene := ecs.NewScene()
		l := newLoader(loader.WithStrict(true))

		_, err := l.Load(scene, strings.NewReader("[[entity]]\n[entity.Position]\nX = 1.0\nZ = 3.0\n"))
		assert.ErrorIs(t, err, loader.ErrUndecodedKeys)
		assert.Equal(t, 0, scene.Len())
	})

	t.Run("capacity errors roll back", func(t *testing.T) {
		scene := ecs.NewScene(ecs.WithMaxEntities(2))
		_, err := newLoader().Load(scene, strings.NewReader(sceneSource))
		assert.ErrorIs(t, err, ecs.ErrCapacityExceeded)
		assert.Equal(t, 0, scene.Len())
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(sceneSource), 0o644))

	scene := ecs.NewScene()
	ids, err := newLoader().LoadFile(scene, path)
	require.NoError(t, err)
	assert.Len(t, ids, 3)

	_, err = newLoader().LoadFile(scene, filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
