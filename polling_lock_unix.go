//go:build !windows

package telegram

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ErrPollingConflict reports that another process on this machine is
// already long-polling with the same token. Two concurrent getUpdates
// consumers would split batches between them unpredictably, so App
// refuses to start a second one.
var ErrPollingConflict = errors.New("another polling instance is already running for this bot token")

const pollingLockDirName = "tgbot-locks"

// pollingInstanceLock is a per-token advisory flock. The file records
// the owning PID so a refused start can name the competing process.
type pollingInstanceLock struct {
	file *os.File
	path string
}

func acquirePollingInstanceLock(botToken string) (*pollingInstanceLock, error) {
	if botToken == "" {
		return nil, errors.New("bot token is empty")
	}

	lockPath, err := pollingLockPath(botToken)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		if errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN) {
			return nil, conflictError(lockPath)
		}
		return nil, fmt.Errorf("acquire lock file: %w", err)
	}

	l := &pollingInstanceLock{file: f, path: lockPath}
	l.stampOwner()
	return l, nil
}

// pollingLockPath maps a token to its lock file. Tokens are secrets, so
// the file name carries a hash, never the token itself.
func pollingLockPath(botToken string) (string, error) {
	dir := filepath.Join(os.TempDir(), pollingLockDirName)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create lock directory: %w", err)
	}
	sum := sha256.Sum256([]byte(botToken))
	return filepath.Join(dir, fmt.Sprintf("polling-%x.lock", sum[:8])), nil
}

// conflictError decorates ErrPollingConflict with the owner PID when
// the lock file still names one.
func conflictError(lockPath string) error {
	if pid, ok := readLockOwnerPID(lockPath); ok {
		return fmt.Errorf("%w (owner_pid=%d, lock=%s)", ErrPollingConflict, pid, lockPath)
	}
	return fmt.Errorf("%w (lock=%s)", ErrPollingConflict, lockPath)
}

// stampOwner records the holder's PID in the lock file for conflict
// messages. Failures are ignored, the flock itself is what guards.
func (l *pollingInstanceLock) stampOwner() {
	if err := l.file.Truncate(0); err != nil {
		return
	}
	_, _ = l.file.Seek(0, 0)
	_, _ = fmt.Fprintf(l.file, "pid=%d\n", os.Getpid())
}

func (l *pollingInstanceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}

	unlockErr := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	closeErr := l.file.Close()
	l.file = nil

	if unlockErr != nil {
		return fmt.Errorf("unlock %s: %w", l.path, unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", l.path, closeErr)
	}
	return nil
}

func readLockOwnerPID(lockPath string) (int, bool) {
	b, err := os.ReadFile(lockPath)
	if err != nil {
		return 0, false
	}

	raw := strings.TrimSpace(string(b))
	if !strings.HasPrefix(raw, "pid=") {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimPrefix(raw, "pid="))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}
