package storage

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/filedesk/filevault/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testFilesystem(t *testing.T) System {
	t.Helper()

	cfg := &config.StorageConfig{BasePath: t.TempDir()}
	sys, err := NewFilesystem(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}
	if err := sys.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	return sys
}

func TestNewFilesystem_EmptyBasePath(t *testing.T) {
	cfg := &config.StorageConfig{BasePath: ""}

	if _, err := NewFilesystem(cfg, testLogger()); err == nil {
		t.Fatal("NewFilesystem() succeeded with empty BasePath, want error")
	}
}

func TestStart_CreatesDirectory(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "nested", "uploads")
	cfg := &config.StorageConfig{BasePath: target}

	sys, err := NewFilesystem(cfg, testLogger())
	if err != nil {
		t.Fatalf("NewFilesystem() failed: %v", err)
	}
	if err := sys.Start(context.Background()); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	if _, err := os.Stat(target); os.IsNotExist(err) {
		t.Error("Start() did not create storage directory")
	}
}

func TestPut_Retrieve_RoundTrip(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()
	data := []byte("hello world")

	key, err := sys.Put(ctx, data, "notes.txt")
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if !strings.HasSuffix(key, "-notes.txt") {
		t.Errorf("Put() key = %q, want `{timestamp}-notes.txt` shape", key)
	}

	retrieved, err := sys.Retrieve(ctx, key)
	if err != nil {
		t.Fatalf("Retrieve() failed: %v", err)
	}
	if string(retrieved) != string(data) {
		t.Errorf("Retrieved data = %q, want %q", retrieved, data)
	}
}

func TestPut_RepeatedNamesYieldUniqueKeys(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key, err := sys.Put(ctx, []byte("x"), "cat.png")
		if err != nil {
			t.Fatalf("Put() failed: %v", err)
		}
		if seen[key] {
			t.Fatalf("Put() produced duplicate key %q", key)
		}
		seen[key] = true
	}
}

func TestPut_SanitizesOriginalName(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()

	key, err := sys.Put(ctx, []byte("x"), "../../etc/pass wd")
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}
	if strings.Contains(key, "/") || strings.Contains(key, " ") {
		t.Errorf("Put() key = %q contains unsanitized characters", key)
	}

	if _, err := sys.Retrieve(ctx, key); err != nil {
		t.Errorf("Retrieve() of sanitized key failed: %v", err)
	}
}

func TestDelete_Idempotent(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()

	key, err := sys.Put(ctx, []byte("data"), "doc.pdf")
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if err := sys.Delete(ctx, key); err != nil {
		t.Fatalf("Delete() of already-gone key failed: %v, want nil", err)
	}

	if _, err := sys.Retrieve(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Retrieve() after delete = %v, want ErrNotFound", err)
	}
}

func TestRetrieve_MissingKey(t *testing.T) {
	sys := testFilesystem(t)

	if _, err := sys.Retrieve(context.Background(), "12345-missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Retrieve() = %v, want ErrNotFound", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()

	for _, key := range []string{"", "../escape", "/abs/path"} {
		if _, err := sys.Retrieve(ctx, key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Retrieve(%q) = %v, want ErrInvalidKey", key, err)
		}
		if err := sys.Delete(ctx, key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Delete(%q) = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestExists(t *testing.T) {
	sys := testFilesystem(t)
	ctx := context.Background()

	key, err := sys.Put(ctx, []byte("data"), "doc.pdf")
	if err != nil {
		t.Fatalf("Put() failed: %v", err)
	}

	ok, err := sys.Exists(ctx, key)
	if err != nil || !ok {
		t.Errorf("Exists(%q) = (%v, %v), want (true, nil)", key, ok, err)
	}

	ok, err = sys.Exists(ctx, "12345-missing.pdf")
	if err != nil || ok {
		t.Errorf("Exists(missing) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestNewKey_MonotonicPrefix(t *testing.T) {
	a := newKey("f.txt")
	b := newKey("f.txt")
	if a == b {
		t.Errorf("newKey() produced identical keys %q", a)
	}
	if a >= b {
		t.Errorf("newKey() keys not increasing: %q then %q", a, b)
	}
}
