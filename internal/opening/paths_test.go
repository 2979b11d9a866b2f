package opening

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultCacheDirCreatesDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "darwin" {
		t.Skipf("XDG_DATA_HOME override only applies on %s's default branch", "linux")
	}

	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DefaultCacheDir()
	if err != nil {
		t.Fatalf("DefaultCacheDir: %v", err)
	}

	want := filepath.Join(tmp, appName, "opening-cache")
	if dir != want {
		t.Errorf("got %s want %s", dir, want)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("expected %s to exist as a directory", dir)
	}
}
