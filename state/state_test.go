package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateOperations(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOOKMAN_HOME", tmpDir)

	manifestPath := filepath.Join(tmpDir, "repo", ".pre-commit-config.yaml")

	t.Run("Load empty state", func(t *testing.T) {
		st, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if st == nil {
			t.Fatal("Load() returned nil state")
		}
		if len(st.Results) != 0 {
			t.Errorf("Load() returned non-empty state: %v", st.Results)
		}
	})

	t.Run("Set and Get result", func(t *testing.T) {
		result := Result{
			Digest:    Digest([]byte("repos: []\n")),
			Valid:     true,
			CheckedAt: time.Now().UTC(),
		}

		if err := Set(manifestPath, result); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, ok, err := Get(manifestPath)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() returned ok=false after Set()")
		}
		if got.Digest != result.Digest {
			t.Errorf("Get() digest = %v, want %v", got.Digest, result.Digest)
		}
		if !got.Valid {
			t.Error("Get() valid = false, want true")
		}
	})

	t.Run("Get non-existent path", func(t *testing.T) {
		_, ok, err := Get(filepath.Join(tmpDir, "missing", ".pre-commit-config.yaml"))
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() returned ok=true for non-existent path")
		}
	})

	t.Run("Set records problems", func(t *testing.T) {
		badPath := filepath.Join(tmpDir, "bad", ".pre-commit-config.yaml")
		result := Result{
			Digest:    Digest([]byte("repos:\n  - repo: x\n")),
			Valid:     false,
			Problems:  []string{"repo 'x' is remote and requires a rev"},
			CheckedAt: time.Now().UTC(),
		}

		if err := Set(badPath, result); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, ok, err := Get(badPath)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatal("Get() returned ok=false after Set()")
		}
		if got.Valid {
			t.Error("Get() valid = true, want false")
		}
		if len(got.Problems) != 1 {
			t.Errorf("Get() problems = %v, want one entry", got.Problems)
		}
	})

	t.Run("Delete result", func(t *testing.T) {
		if err := Delete(manifestPath); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		_, ok, err := Get(manifestPath)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if ok {
			t.Error("Get() returned ok=true after Delete()")
		}
	})

	t.Run("State file location", func(t *testing.T) {
		if err := Set(manifestPath, Result{Digest: "d", Valid: true}); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		statePath := filepath.Join(tmpDir, "state", "hookman", "state.yml")
		if _, err := os.Stat(statePath); os.IsNotExist(err) {
			t.Errorf("state file not found at %s", statePath)
		}
	})
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("repos: []\n"))
	b := Digest([]byte("repos: []\n"))
	c := Digest([]byte("repos:\n"))

	if a != b {
		t.Errorf("Digest not stable: %v != %v", a, b)
	}
	if a == c {
		t.Error("Digest collision for different content")
	}
	if len(a) != 64 {
		t.Errorf("Digest length = %d, want 64", len(a))
	}
}
