// meta/meta.go
package meta

import (
	"connectfour/searcher"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DEPTH is the default search horizon in plies.
const DEPTH = searcher.DefaultDepth

// HEURISTIC names the default evaluation strategy.
const HEURISTIC = "placement"

// SELECTION names the default move selection.
const SELECTION = "greedy"

// ROUNDS played per connection by the host.
const ROUNDS = 10

// TICK is how often agents are pumped while waiting on them.
const TICK = time.Millisecond

const ADDR = "localhost:8080"

// Config gathers every setting the binaries read. Zero fields fall back to
// the defaults above.
type Config struct {
	LogLevel string `yaml:"log_level"`
	Search   Search `yaml:"search"`
	Host     Host   `yaml:"host"`
	Client   Client `yaml:"client"`
	Lab      Lab    `yaml:"experiments"`
}

type Search struct {
	Depth     int    `yaml:"depth"`
	Heuristic string `yaml:"heuristic"`
	Selection string `yaml:"selection"`
	Seed      uint64 `yaml:"seed"`
}

type Host struct {
	Addr   string        `yaml:"addr"`
	Rounds int           `yaml:"rounds"`
	Tick   time.Duration `yaml:"tick"`
}

type Client struct {
	URL              string        `yaml:"url"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
}

type Lab struct {
	Games     int    `yaml:"games"`
	Parallel  int    `yaml:"parallel"`
	OutputDir string `yaml:"output_dir"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Search: Search{
			Depth:     DEPTH,
			Heuristic: HEURISTIC,
			Selection: SELECTION,
		},
		Host: Host{
			Addr:   ADDR,
			Rounds: ROUNDS,
			Tick:   TICK,
		},
		Client: Client{
			URL:              "ws://" + ADDR + "/",
			HandshakeTimeout: 10 * time.Second,
		},
		Lab: Lab{
			Games:     30,
			Parallel:  4,
			OutputDir: "experiments",
		},
	}
}

// Load reads a YAML config on top of the defaults. An empty path or a missing
// file yields the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Validate() error {
	switch {
	case c.Search.Depth < 1:
		return fmt.Errorf("search depth must be at least 1, got %d", c.Search.Depth)
	case c.Host.Rounds < 1:
		return fmt.Errorf("host rounds must be at least 1, got %d", c.Host.Rounds)
	case c.Host.Tick <= 0:
		return fmt.Errorf("host tick must be positive, got %s", c.Host.Tick)
	case c.Lab.Games < 1 || c.Lab.Parallel < 1:
		return errors.New("experiments need at least one game and one worker")
	}
	return nil
}
