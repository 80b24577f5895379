// Package loader builds scene entities from TOML scene descriptions.
//
// A scene file is a list of entity tables. Every key of an entity table names a
// component type registered with the Loader, and its value is decoded into a
// fresh instance of that type:
//
//	[[entity]]
//	[entity.Position]
//	X = 1.0
//	Y = 2.0
//	[entity.Sprite]
//	Path = "player.png"
package loader

import (
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/plus3/scene/ecs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	// ErrUnknownComponent is returned when an entity table names an unregistered component.
	ErrUnknownComponent = eris.New("unknown component")

	// ErrUndecodedKeys is returned in strict mode when a component table has keys
	// that do not match any field of the component type.
	ErrUndecodedKeys = eris.New("undecoded keys")
)

type decodeFunc func(md *toml.MetaData, prim toml.Primitive, scene *ecs.Scene, id ecs.EntityId) error

// Loader maps component names used in scene files to component types.
type Loader struct {
	decoders map[string]decodeFunc
	logger   zerolog.Logger
	strict   bool
}

// Option configures a Loader.
type Option func(l *Loader)

// WithLogger replaces the loader's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithStrict makes keys that do not match a component field an error instead of a warning.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// New creates a Loader with no registered components.
func New(opts ...Option) *Loader {
	l := &Loader{
		decoders: make(map[string]decodeFunc),
		logger:   log.Logger.With().Str("component", "loader").Logger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register makes T loadable under name. An empty name uses the Go type name.
func Register[T any](l *Loader, name string) {
	if name == "" {
		name = reflect.TypeFor[T]().Name()
	}
	l.decoders[name] = func(md *toml.MetaData, prim toml.Primitive, scene *ecs.Scene, id ecs.EntityId) error {
		var value T
		if err := md.PrimitiveDecode(prim, &value); err != nil {
			return eris.Wrapf(err, "failed to decode %s", name)
		}
		_, err := ecs.Set(scene, id, value)
		return err
	}
}

// Components returns the registered component names in sorted order.
func (l *Loader) Components() []string {
	names := make([]string, 0, len(l.decoders))
	for name := range l.decoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type sceneFile struct {
	Entities []map[string]toml.Primitive `toml:"entity"`
}

// Load reads a scene description from r and creates its entities in scene. On
// error no entity of this load is left behind.
func (l *Loader) Load(scene *ecs.Scene, r io.Reader) ([]ecs.EntityId, error) {
	var file sceneFile
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, eris.Wrap(err, "failed to parse scene")
	}

	created := make([]ecs.EntityId, 0, len(file.Entities))
	rollback := func() {
		for _, id := range created {
			_ = scene.DestroyEntity(id)
		}
	}

	for i, table := range file.Entities {
		id, err := scene.NewEntity()
		if err != nil {
			rollback()
			return nil, eris.Wrapf(err, "entity %d", i)
		}
		created = append(created, id)

		// sorted so that component ids are assigned in a stable order
		names := make([]string, 0, len(table))
		for name := range table {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			decode, ok := l.decoders[name]
			if !ok {
				rollback()
				return nil, eris.Wrapf(ErrUnknownComponent, "entity %d: %q", i, name)
			}
			if err := decode(&md, table[name], scene, id); err != nil {
				rollback()
				return nil, eris.Wrapf(err, "entity %d", i)
			}
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		if l.strict {
			rollback()
			return nil, eris.Wrapf(ErrUndecodedKeys, "%s", strings.Join(keys, ", "))
		}
		l.logger.Warn().Strs("keys", keys).Msg("ignoring undecoded scene keys")
	}

	l.logger.Debug().Int("entities", len(created)).Msg("scene loaded")
	return created, nil
}

// LoadFile is Load reading from the file at path.
func (l *Loader) LoadFile(scene *ecs.Scene, path string) ([]ecs.EntityId, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to open scene %s", path)
	}
	defer f.Close()

	ids, err := l.Load(scene, f)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load scene %s", path)
	}
	return ids, nil
}
