package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestSkipsConfig(t *testing.T) {
	parent := &cobra.Command{Use: "config", Annotations: noConfig()}
	child := &cobra.Command{Use: "init"}
	parent.AddCommand(child)
	plain := &cobra.Command{Use: "generate"}

	if !skipsConfig(parent) {
		t.Error("annotated command should skip config")
	}
	if !skipsConfig(child) {
		t.Error("child of annotated command should skip config")
	}
	if skipsConfig(plain) {
		t.Error("plain command should load config")
	}
}

func TestRootLoadsConfigFile(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[maze]\nwidth = 7\nheight = 3\nalgorithm = \"prim\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "config", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	// config path skips loading, so defaults remain.
	if c.Config.Maze.Width != 20 {
		t.Errorf("Width = %d, want default 20", c.Config.Maze.Width)
	}

	root = c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--config", path, "config", "show"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.Config.Maze.Width != 7 || c.Config.Maze.Height != 3 || c.Config.Maze.Algorithm != "prim" {
		t.Errorf("Config.Maze = %+v, want 7x3 prim", c.Config.Maze)
	}
}

func TestRootRejectsMissingConfig(t *testing.T) {
	isolateEnv(t)
	c := New(&bytes.Buffer{}, LogInfo)
	root := c.RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "config", "show"})
	if err := root.Execute(); err == nil {
		t.Error("Execute() with a missing explicit config should fail")
	}
}

// isolateEnv points config and cache lookups at a temp dir and clears
// MAZEGEN_* overrides.
func isolateEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	for _, k := range []string{"MAZEGEN_WIDTH", "MAZEGEN_HEIGHT", "MAZEGEN_ALGORITHM", "MAZEGEN_SEED",
		"MAZEGEN_STYLE", "MAZEGEN_CACHE", "MAZEGEN_CACHE_DIR", "MAZEGEN_REDIS_ADDR", "MAZEGEN_MONGO_URI",
		"MAZEGEN_ADDR", "MAZEGEN_MAX_DIMENSION", "MAZEGEN_REDIS_DB"} {
		t.Setenv(k, "")
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })
}
