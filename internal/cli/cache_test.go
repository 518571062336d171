package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mazegen/pkg/cache"
	"github.com/matzehuels/mazegen/pkg/config"
)

func TestCachePathUsesConfigDir(t *testing.T) {
	isolateEnv(t)
	dir := filepath.Join(t.TempDir(), "custom")
	t.Setenv("MAZEGEN_CACHE_DIR", dir)

	var out bytes.Buffer
	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := strings.TrimSpace(out.String()); got != dir {
		t.Errorf("cache path = %q, want %q", got, dir)
	}
}

func TestCacheClearRemovesEntries(t *testing.T) {
	isolateEnv(t)
	dir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("MAZEGEN_CACHE_DIR", dir)

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, k := range []string{"maze:a", "maze:b", "artifact:c"} {
		if err := fc.Set(ctx, k, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	root := New(&bytes.Buffer{}, LogInfo).RootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if _, ok, _ := fc.Get(ctx, "maze:a"); ok {
		t.Error("entry should be gone after cache clear")
	}
}

func TestNewCacheBackends(t *testing.T) {
	isolateEnv(t)
	c := New(&bytes.Buffer{}, LogInfo)
	ctx := context.Background()

	c.Config.Cache.Backend = config.CacheNone
	cc, err := c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("backend none gave %T, want NullCache", cc)
	}

	c.Config.Cache.Backend = config.CacheFile
	c.Config.Cache.Dir = t.TempDir()
	cc, err = c.newCache(ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := cc.(*cache.FileCache); !ok || fc.Dir() != c.Config.Cache.Dir {
		t.Errorf("backend file gave %T", cc)
	}

	cc, err = c.newCache(ctx, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T, want NullCache", cc)
	}

	c.Config.Cache.Backend = config.CacheRedis
	c.Config.Cache.RedisAddr = "127.0.0.1:1"
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if _, err := c.newCache(ctx, false); err == nil {
		t.Error("unreachable redis should fail")
	}
}
