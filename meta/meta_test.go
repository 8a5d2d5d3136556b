package meta

import (
	"connectfour/searcher"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		config, err := Load("")
		require.NoError(t, err)
		require.Equal(t, Default(), config)

		config, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), config)
		require.Equal(t, searcher.DefaultDepth, config.Search.Depth, "Default depth should follow the planner's")
	})

	t.Run("file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		data := `
log_level: debug
search:
  depth: 6
  selection: minimax
host:
  rounds: 3
  tick: 5ms
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", config.LogLevel)
		require.Equal(t, 6, config.Search.Depth)
		require.Equal(t, "minimax", config.Search.Selection)
		require.Equal(t, HEURISTIC, config.Search.Heuristic, "unset fields keep their default")
		require.Equal(t, 3, config.Host.Rounds)
		require.Equal(t, 5*time.Millisecond, config.Host.Tick)
		require.Equal(t, ADDR, config.Host.Addr)
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search:\n  depth: 0\n"), 0644))

		_, err := Load(path)
		require.ErrorContains(t, err, "search depth")
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("search: [\n"), 0644))

		_, err := Load(path)
		require.ErrorContains(t, err, "failed to parse")
	})
}
