package secrets

import (
	"errors"
	"fmt"
	"testing"

	"github.com/99designs/keyring"
)

// setupMockRing routes Open through an in-memory ring for the test.
func setupMockRing(t *testing.T) *MockRing {
	t.Helper()
	mock := NewMockRing()
	SetOpenFunc(func() (Ring, error) { return mock, nil })
	t.Cleanup(func() { SetOpenFunc(nil) })
	return mock
}

func TestOpen_RingFailure(t *testing.T) {
	SetOpenFunc(func() (Ring, error) { return nil, fmt.Errorf("no backend") })
	t.Cleanup(func() { SetOpenFunc(nil) })

	_, err := Open()
	if err == nil {
		t.Fatal("expected error when ring cannot be opened")
	}
}

func TestGet_NotFound(t *testing.T) {
	setupMockRing(t)

	store, err := Open()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	_, err = store.Get("svc", "user")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestSetAndGet(t *testing.T) {
	setupMockRing(t)

	store, err := Open()
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if err := store.Set("svc", "user", "Svc Token", "abc123"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	secret, err := store.Get("svc", "user")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if secret != "abc123" {
		t.Errorf("expected abc123, got %q", secret)
	}
}

func TestSet_EmptySecret(t *testing.T) {
	setupMockRing(t)

	store, _ := Open()
	if err := store.Set("svc", "user", "", ""); err == nil {
		t.Error("expected error when storing empty secret")
	}
}

func TestGet_EmptyDataTreatedAsAbsent(t *testing.T) {
	mock := setupMockRing(t)
	key := itemKey("svc", "user")
	mock.items[key] = keyring.Item{Key: key, Data: nil}

	store, _ := Open()
	_, err := store.Get("svc", "user")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for empty data, got: %v", err)
	}
}

func TestDelete(t *testing.T) {
	mock := setupMockRing(t)
	mock.SetSecret("svc", "user", "abc123")

	store, _ := Open()
	if err := store.Delete("svc", "user"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Get("svc", "user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected secret to be gone, got: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	setupMockRing(t)

	store, _ := Open()
	if err := store.Delete("svc", "user"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestItemKey_PairsDoNotCollide(t *testing.T) {
	mock := setupMockRing(t)
	mock.SetSecret("svc", "alice", "a-secret")
	mock.SetSecret("svc", "bob", "b-secret")

	store, _ := Open()
	got, err := store.Get("svc", "alice")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "a-secret" {
		t.Errorf("expected alice's secret, got %q", got)
	}
}

func TestShouldForceFileBackend(t *testing.T) {
	tests := []struct {
		goos     string
		dbusAddr string
		want     bool
	}{
		{"linux", "", true},
		{"linux", "  ", true},
		{"linux", "unix:path=/run/user/1000/bus", false},
		{"darwin", "", false},
		{"windows", "", false},
	}

	for _, tt := range tests {
		if got := shouldForceFileBackend(tt.goos, tt.dbusAddr); got != tt.want {
			t.Errorf("shouldForceFileBackend(%q, %q) = %v, want %v", tt.goos, tt.dbusAddr, got, tt.want)
		}
	}
}

func TestKeyringFilePassword_EnvOverride(t *testing.T) {
	t.Setenv(KeyringPasswordEnvVarName, "hunter2")
	if got := keyringFilePassword(); got != "hunter2" {
		t.Errorf("expected env password, got %q", got)
	}

	t.Setenv(KeyringPasswordEnvVarName, "")
	if got := keyringFilePassword(); got != ServiceName {
		t.Errorf("expected default password, got %q", got)
	}
}
