package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("invalid level")

// Level is a hand-authored stage: a spawn point, a kill plane and the two
// ordered object groups the character switches between.
type Level struct {
	Name       string   `json:"name"`
	Spawn      Point    `json:"spawn"`
	KillPlaneY *float64 `json:"kill_plane_y,omitempty"`
	Background string   `json:"background,omitempty"`
	Groups     Groups   `json:"groups"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Groups struct {
	A []Object `json:"a"`
	B []Object `json:"b"`
}

// Object is an axis-aligned box. X and Y are its centre in world units.
type Object struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Color  string  `json:"color,omitempty"`
}

func (l *Level) Validate() error {
	if len(l.Groups.A) == 0 || len(l.Groups.B) == 0 {
		return fmt.Errorf("%w: both groups need at least one object", ErrInvalidLevel)
	}
	check := func(group string, objs []Object) error {
		for i, o := range objs {
			if o.Width <= 0 || o.Height <= 0 {
				return fmt.Errorf("%w: group %s object %d has size %gx%g", ErrInvalidLevel, group, i, o.Width, o.Height)
			}
		}
		return nil
	}
	if err := check("a", l.Groups.A); err != nil {
		return err
	}
	return check("b", l.Groups.B)
}

// Load reads a level from disk when the path exists, otherwise from the
// embedded levels.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return parse(name, data)
	}
	return LoadLevelFromFS(filepath.Base(name))
}

func LoadLevelFromFS(name string) (*Level, error) {
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(name, data)
}

func parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

// Names lists the embedded levels.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			out = append(out, strings.TrimSuffix(e.Name(), ".json"))
		}
	}
	sort.Strings(out)
	return out
}
