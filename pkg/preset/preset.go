// Package preset loads named animation definitions from YAML documents,
// keeping motion design out of application code. A preset file names
// specs and palette colors:
//
//	version: v1
//	animations:
//	  fade-in: {kind: basic, to: 1, duration: 300ms, curve: ease-out}
//	  pop:     {kind: spring, to: 1, bounciness: 12, speed: 14}
//	  fling:   {kind: decay, velocity: 800, damping: 0.95}
//	colors:
//	  accent: tomato
//	  surface: "#1e1e2e"
//
// Resolved specs are plain [motion.Spec] values; colors resolve CSS
// color names or hex literals into color.RGBA for use with
// [motion.ColorValue]. Use [Watch] to hot-reload a preset directory
// during development.
package preset

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-motion/motion/pkg/motion"
)

// supportedMajor is the preset schema major version this package reads.
const supportedMajor = "v1"

type fileDoc struct {
	Version    string                `yaml:"version"`
	Animations map[string]definition `yaml:"animations"`
	Colors     map[string]string     `yaml:"colors"`
}

type definition struct {
	Kind       string   `yaml:"kind"`
	To         float64  `yaml:"to"`
	Duration   string   `yaml:"duration"`
	Velocity   float64  `yaml:"velocity"`
	Bounciness *float64 `yaml:"bounciness"`
	Speed      *float64 `yaml:"speed"`
	Damping    float64  `yaml:"damping"`
	Curve      string   `yaml:"curve"`
}

// Library is an immutable set of named animation specs and palette
// colors resolved from one or more preset documents.
type Library struct {
	version string
	specs   map[string]motion.Spec
	colors  map[string]color.RGBA
}

// Version returns the schema version the library was declared with.
func (l *Library) Version() string { return l.version }

// Spec returns the named animation spec.
func (l *Library) Spec(name string) (motion.Spec, bool) {
	s, ok := l.specs[name]
	return s, ok
}

// Names returns the defined animation names in sorted order.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.specs))
	for name := range l.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color returns the named palette color.
func (l *Library) Color(name string) (color.RGBA, bool) {
	c, ok := l.colors[name]
	return c, ok
}

// Parse reads a single preset document.
func Parse(data []byte) (*Library, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	version := strings.TrimSpace(doc.Version)
	if version == "" {
		version = supportedMajor
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("preset: invalid schema version %q", version)
	}
	if semver.Major(version) != supportedMajor {
		return nil, fmt.Errorf("preset: unsupported schema version %q (want %s)", version, supportedMajor)
	}

	lib := &Library{
		version: version,
		specs:   make(map[string]motion.Spec, len(doc.Animations)),
		colors:  make(map[string]color.RGBA, len(doc.Colors)),
	}
	for name, def := range doc.Animations {
		spec, err := resolve(def)
		if err != nil {
			return nil, fmt.Errorf("preset: animation %q: %w", name, err)
		}
		lib.specs[name] = spec
	}
	for name, value := range doc.Colors {
		c, err := parseColor(value)
		if err != nil {
			return nil, fmt.Errorf("preset: color %q: %w", name, err)
		}
		lib.colors[name] = c
	}
	return lib, nil
}

// Load reads one preset file.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return lib, nil
}

// LoadDir reads every .yaml/.yml file in dir (sorted by name) and
// merges them into one library. A name defined in two files is an
// error; preset names are a flat namespace.
func LoadDir(dir string) (*Library, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("preset: %w", err)
	}

	merged := &Library{
		version: supportedMajor,
		specs:   make(map[string]motion.Spec),
		colors:  make(map[string]color.RGBA),
	}
	for _, entry := range entries {
		if entry.IsDir() || !isPresetFile(entry.Name()) {
			continue
		}
		lib, err := Load(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		for name, spec := range lib.specs {
			if _, dup := merged.specs[name]; dup {
				return nil, fmt.Errorf("preset: animation %q defined in more than one file", name)
			}
			merged.specs[name] = spec
		}
		for name, c := range lib.colors {
			if _, dup := merged.colors[name]; dup {
				return nil, fmt.Errorf("preset: color %q defined in more than one file", name)
			}
			merged.colors[name] = c
		}
	}
	return merged, nil
}

func isPresetFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func resolve(def definition) (motion.Spec, error) {
	var spec motion.Spec
	switch strings.ToLower(strings.TrimSpace(def.Kind)) {
	case "basic":
		if def.Duration == "" {
			return nil, fmt.Errorf("basic: duration is required")
		}
		d, err := time.ParseDuration(def.Duration)
		if err != nil {
			return nil, fmt.Errorf("basic: %w", err)
		}
		curve, err := curveFor(def.Curve)
		if err != nil {
			return nil, err
		}
		spec = motion.Basic{To: def.To, Duration: d, Curve: curve}

	case "spring":
		bounciness := motion.DefaultSpringBounciness
		if def.Bounciness != nil {
			bounciness = *def.Bounciness
		}
		speed := motion.DefaultSpringSpeed
		if def.Speed != nil {
			speed = *def.Speed
		}
		spec = motion.Spring{
			To:              def.To,
			InitialVelocity: def.Velocity,
			Bounciness:      bounciness,
			Speed:           speed,
		}

	case "decay":
		spec = motion.Decay{InitialVelocity: def.Velocity, Damping: def.Damping}

	case "":
		return nil, fmt.Errorf("kind is required")
	default:
		return nil, fmt.Errorf("unknown kind %q", def.Kind)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// curveFor maps a curve name to its easing function. The empty name
// means linear. cubic-bezier(x1, y1, x2, y2) literals build custom
// curves, matching the CSS syntax.
func curveFor(name string) (motion.Curve, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	switch trimmed {
	case "", "linear":
		return motion.Linear, nil
	case "ease":
		return motion.Ease, nil
	case "ease-in":
		return motion.EaseIn, nil
	case "ease-out":
		return motion.EaseOut, nil
	case "ease-in-out":
		return motion.EaseInOut, nil
	}
	if strings.HasPrefix(trimmed, "cubic-bezier(") && strings.HasSuffix(trimmed, ")") {
		body := strings.TrimSuffix(strings.TrimPrefix(trimmed, "cubic-bezier("), ")")
		parts := strings.Split(body, ",")
		if len(parts) != 4 {
			return nil, fmt.Errorf("cubic-bezier needs 4 parameters, got %d", len(parts))
		}
		var p [4]float64
		for i, part := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return nil, fmt.Errorf("cubic-bezier parameter %d: %w", i+1, err)
			}
			p[i] = v
		}
		return motion.CubicBezier(p[0], p[1], p[2], p[3]), nil
	}
	return nil, fmt.Errorf("unknown curve %q", name)
}

// parseColor resolves a CSS color name or #rgb/#rrggbb/#rrggbbaa hex
// literal.
func parseColor(value string) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(value))
	if s == "" {
		return color.RGBA{}, fmt.Errorf("empty color")
	}
	if s[0] == '#' {
		return parseHexColor(s[1:])
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", value)
}

func parseHexColor(hex string) (color.RGBA, error) {
	switch len(hex) {
	case 3:
		var out [3]uint8
		for i := range 3 {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
			}
			out[i] = uint8(v * 17)
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: 0xFF}, nil
	case 6, 8:
		var out [4]uint8
		out[3] = 0xFF
		for i := 0; i*2 < len(hex); i++ {
			v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
			}
			out[i] = uint8(v)
		}
		return color.RGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color #%s", hex)
	}
}
