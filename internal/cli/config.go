package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/pipeline"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/internal/server"
)

// fileConfig is the layout of config.toml. Every section is optional and
// flags override file values.
type fileConfig struct {
	Render renderSection `toml:"render"`
	Cache  cacheSection  `toml:"cache"`
	Server serverSection `toml:"server"`
}

type renderSection struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	Backend    string  `toml:"backend"`
	Foreground string  `toml:"foreground"`
	Background string  `toml:"background"`
	Level      string  `toml:"level"`
	Border     bool    `toml:"border"`
}

type cacheSection struct {
	Disabled bool   `toml:"disabled"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

type serverSection struct {
	Addr      string        `toml:"addr"`
	MaxExtent float64       `toml:"max_extent"`
	Timeout   time.Duration `toml:"timeout"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		Render: renderSection{
			Width:      pipeline.DefaultWidth,
			Height:     pipeline.DefaultHeight,
			Backend:    string(pipeline.DefaultBackend),
			Foreground: render.Hex(render.DefaultForeground),
			Background: render.Hex(render.DefaultBackground),
			Level:      encoder.DefaultLevel.String(),
		},
		Server: serverSection{
			Addr:      server.DefaultAddr,
			MaxExtent: server.DefaultMaxExtent,
			Timeout:   server.DefaultRenderTimeout,
		},
	}
}

// configPath returns $XDG_CONFIG_HOME/qrtile/config.toml, falling back to
// ~/.config/qrtile/config.toml.
func configPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfig reads path on top of the defaults. When path is empty the
// default location is tried and a missing file is not an error. Unknown
// keys are rejected.
func loadConfig(path string) (fileConfig, error) {
	cfg := defaultFileConfig()

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, errors.New(errors.ErrCodeInvalidConfig, "config file not found: %s", path)
		}
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// pipelineConfig converts the render section into a validated-ready
// pipeline.Config.
func (r renderSection) pipelineConfig() (pipeline.Config, error) {
	backend, err := render.ParseBackend(r.Backend)
	if err != nil {
		return pipeline.Config{}, err
	}
	fg, err := render.ParseColor(r.Foreground)
	if err != nil {
		return pipeline.Config{}, err
	}
	bg, err := render.ParseColor(r.Background)
	if err != nil {
		return pipeline.Config{}, err
	}
	return pipeline.Config{
		Width:      r.Width,
		Height:     r.Height,
		Foreground: fg,
		Background: bg,
		Backend:    backend,
	}, nil
}
