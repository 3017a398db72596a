// Package settings loads application and group settings.
//
// Settings live next to the graph file as setting.json (the historical
// format) or setting.toml:
//
//	{
//	  "app_setting": {"ignore_unconnected_nodes": true, "ignore_node_list": ["/rviz.*"]},
//	  "group_setting": {
//	    "/sensing": {"direction": "horizontal", "offset": [0, 0, 1, 1], "color": [128, 0, 0]}
//	  }
//	}
//
// Group order is significant (see layout.Assign) and is preserved in both
// formats. When no file is found the embedded defaults are used.
package settings

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/rosview/pkg/errors"
	"github.com/matzehuels/rosview/pkg/filter"
	"github.com/matzehuels/rosview/pkg/graph"
	"github.com/matzehuels/rosview/pkg/layout"
)

// File names searched for, in order, within each candidate directory.
var FileNames = []string{"setting.json", "setting.toml"}

// DisplaceOffset is added to every group's x and y by [Options.DisplaceNewNode].
const DisplaceOffset = -20

//go:embed default.json
var defaultJSON []byte

// App holds application-wide settings.
type App struct {
	WindowSize        [2]int   `json:"window_size" toml:"window_size"`
	Font              string   `json:"font" toml:"font"`
	IgnoreUnconnected bool     `json:"ignore_unconnected_nodes" toml:"ignore_unconnected_nodes"`
	IgnoreNodes       []string `json:"ignore_node_list" toml:"ignore_node_list"`
	IgnoreTopics      []string `json:"ignore_topic_list" toml:"ignore_topic_list"`
}

// Filter returns the filter configuration described by the app settings.
func (a App) Filter() filter.Options {
	return filter.Options{
		IgnoreNodes:       slices.Clone(a.IgnoreNodes),
		IgnoreTopics:      slices.Clone(a.IgnoreTopics),
		IgnoreUnconnected: a.IgnoreUnconnected,
	}
}

// Settings is a loaded settings file.
type Settings struct {
	App    App
	Groups layout.Groups

	// Path is the file the settings came from, empty for the embedded defaults.
	Path string
}

// Options adjust settings after loading.
type Options struct {
	// DisableIgnoreFilter clears the node and topic ignore lists.
	DisableIgnoreFilter bool

	// DisplaceNewNode shifts every group rectangle by DisplaceOffset on both axes.
	DisplaceNewNode bool

	Logger *log.Logger
}

// Load finds and parses the settings for graphFile. The graph file's
// directory is searched first, then the working directory; the embedded
// defaults are used when neither has a settings file.
func Load(graphFile string, opts Options) (*Settings, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var s *Settings
	path, ok := Find(filepath.Dir(graphFile), ".")
	if ok {
		var err error
		if s, err = ParseFile(path); err != nil {
			return nil, err
		}
		logger.Debug("loaded settings", "path", path, "groups", len(s.Groups))
	} else {
		logger.Info("no settings file found, using defaults", "graph", graphFile)
		var err error
		if s, err = Default(); err != nil {
			return nil, err
		}
	}

	s.apply(opts)
	return s, nil
}

// Find returns the first settings file in dirs.
func Find(dirs ...string) (string, bool) {
	seen := make(map[string]bool, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			dir = "."
		}
		if abs, err := filepath.Abs(dir); err == nil {
			if seen[abs] {
				continue
			}
			seen[abs] = true
		}
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}
	}
	return "", false
}

// Default returns the embedded default settings.
func Default() (*Settings, error) {
	s, err := parseJSON(defaultJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded settings: %w", err)
	}
	return s, nil
}

// ParseFile reads a settings file, choosing the format by extension.
func ParseFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapRead(err, path)
	}

	var s *Settings
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		s, err = parseJSON(data)
	case ".toml":
		s, err = parseTOML(data)
	default:
		return nil, errors.New(errors.ErrCodeInvalidSetting, "unsupported settings format: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Path = path
	return s, nil
}

func (s *Settings) apply(opts Options) {
	if opts.DisableIgnoreFilter {
		s.App.IgnoreNodes = nil
		s.App.IgnoreTopics = nil
	}
	if opts.DisplaceNewNode {
		s.Groups = s.Groups.Displace(DisplaceOffset, DisplaceOffset)
	}
}

// =============================================================================
// Formats
// =============================================================================

type groupSpec struct {
	Direction string    `json:"direction" toml:"direction"`
	Offset    []float64 `json:"offset" toml:"offset"`
	Color     []int     `json:"color" toml:"color"`
}

func (spec groupSpec) group(name string) (layout.Group, error) {
	if err := errors.ValidateOffset(spec.Offset); err != nil {
		return layout.Group{}, errors.Wrap(errors.ErrCodeInvalidSetting, err, "group %q", name)
	}
	if len(spec.Color) != 3 {
		return layout.Group{}, errors.New(errors.ErrCodeInvalidSetting, "group %q: color must have 3 components", name)
	}
	g := layout.Group{
		Name:      name,
		Direction: layout.Direction(spec.Direction),
		Color:     graph.Color{spec.Color[0], spec.Color[1], spec.Color[2]},
	}
	copy(g.Offset[:], spec.Offset)
	return g, g.Validate()
}

// orderedGroups decodes a JSON object into groups in document order.
type orderedGroups layout.Groups

func (gs *orderedGroups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("group_setting must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var spec groupSpec
		if err := dec.Decode(&spec); err != nil {
			return fmt.Errorf("group %q: %w", name, err)
		}
		g, err := spec.group(name)
		if err != nil {
			return err
		}
		*gs = append(*gs, g)
	}
	_, err = dec.Token()
	return err
}

func parseJSON(data []byte) (*Settings, error) {
	var doc struct {
		App    App           `json:"app_setting"`
		Groups orderedGroups `json:"group_setting"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidSetting, err, "parse settings")
	}
	return &Settings{App: doc.App, Groups: layout.Groups(doc.Groups)}, nil
}

func parseTOML(data []byte) (*Settings, error) {
	var doc struct {
		App    App                  `toml:"app_setting"`
		Groups map[string]groupSpec `toml:"group_setting"`
	}
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidSetting, err, "parse settings")
	}

	s := &Settings{App: doc.App}
	for _, key := range md.Keys() {
		if len(key) != 2 || key[0] != "group_setting" {
			continue
		}
		spec, ok := doc.Groups[key[1]]
		if !ok {
			continue
		}
		g, err := spec.group(key[1])
		if err != nil {
			return nil, err
		}
		s.Groups = append(s.Groups, g)
	}
	return s, nil
}
