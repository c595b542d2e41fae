//go:build !windows

package telegram

import (
	"errors"
	"strings"
	"testing"
)

func TestPollingInstanceLock_SameTokenConflict(t *testing.T) {
	lock1, err := acquirePollingInstanceLock("test-token-same")
	if err != nil {
		t.Fatalf("first lock should succeed, got error: %v", err)
	}
	defer func() {
		_ = lock1.Release()
	}()

	lock2, err := acquirePollingInstanceLock("test-token-same")
	if err == nil {
		_ = lock2.Release()
		t.Fatal("second lock with same token should fail")
	}
	if !errors.Is(err, ErrPollingConflict) {
		t.Fatalf("conflict should wrap ErrPollingConflict, got: %v", err)
	}
	if !strings.Contains(err.Error(), "lock=") {
		t.Fatalf("conflict error should say who holds the lock, got: %v", err)
	}
}

func TestPollingInstanceLock_DifferentTokenAllowed(t *testing.T) {
	lock1, err := acquirePollingInstanceLock("test-token-a")
	if err != nil {
		t.Fatalf("lock for token A should succeed, got error: %v", err)
	}
	defer func() {
		_ = lock1.Release()
	}()

	lock2, err := acquirePollingInstanceLock("test-token-b")
	if err != nil {
		t.Fatalf("lock for token B should succeed, got error: %v", err)
	}
	defer func() {
		_ = lock2.Release()
	}()
}

func TestPollingInstanceLock_ReleasedLockCanBeReacquired(t *testing.T) {
	lock1, err := acquirePollingInstanceLock("test-token-cycle")
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := lock1.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}

	lock2, err := acquirePollingInstanceLock("test-token-cycle")
	if err != nil {
		t.Fatalf("reacquire after release should succeed, got: %v", err)
	}
	_ = lock2.Release()
}

func TestPollingInstanceLock_EmptyTokenRejected(t *testing.T) {
	if _, err := acquirePollingInstanceLock(""); err == nil {
		t.Fatal("empty token should be rejected")
	}
}
