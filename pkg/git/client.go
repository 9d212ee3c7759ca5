// Package git runs the git commands used to keep an audit trail of
// snapshot changes.
package git

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLockName is the lock file created next to the snapshot while a commit runs.
const DefaultLockName = ".docprotocol.lock"

// Client wraps git command execution with a file-based lock for process safety.
type Client struct {
	WorkDir  string
	Logger   *slog.Logger
	lockPath string
}

// NewClient creates a new git client for the given working directory.
func NewClient(workDir string, logger *slog.Logger) *Client {
	return &Client{
		WorkDir:  workDir,
		Logger:   logger,
		lockPath: DefaultLockName,
	}
}

// IsInstalled reports whether a git binary is on PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether WorkDir is inside a git work tree.
func (c *Client) IsRepo() bool {
	out, err := c.Run("rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// LockName returns the lock file name relative to WorkDir.
func (c *Client) LockName() string {
	return c.lockPath
}

// Lock acquires a file-based lock. It blocks until the lock is acquired.
func (c *Client) Lock() (func(), error) {
	fullLockPath := filepath.Join(c.WorkDir, c.lockPath)

	for {
		f, err := os.OpenFile(fullLockPath, os.O_CREATE|os.O_EXCL, 0666)
		if err == nil {
			f.Close()
			return func() {
				os.Remove(fullLockPath)
			}, nil
		}

		if os.IsExist(err) {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
}

// Run executes a raw git command in the working directory.
// NOTE: It does NOT acquire the lock automatically. The caller must manage safety via Client.Lock().
func (c *Client) Run(args ...string) (string, error) {
	if c.Logger != nil {
		c.Logger.Debug("executing git", "args", args, "dir", c.WorkDir)
	}

	cmd := exec.Command("git", args...)
	cmd.Dir = c.WorkDir

	out, err := cmd.CombinedOutput()
	output := string(out)

	if err != nil {
		return output, fmt.Errorf("git %s failed: %w\nOutput: %s", subcommand(args), err, output)
	}

	return strings.TrimSpace(output), nil
}

// Init initializes a new git repository. Re-running it is safe.
func (c *Client) Init() error {
	_, err := c.Run("init")
	return err
}

// Add adds files to the stage.
func (c *Client) Add(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add"}, files...)
	_, err := c.Run(args...)
	return err
}

// Fallback identity used when neither user.name nor user.email is configured.
const (
	FallbackName  = "docprotocol"
	FallbackEmail = "docprotocol@localhost"
)

// Commit records staged changes. The configured identity is used when there
// is one; otherwise the fallback identity keeps fresh machines and CI working.
func (c *Client) Commit(msg string) error {
	args := []string{"commit", "-m", msg}
	if !c.hasIdentity() {
		args = append([]string{"-c", "user.name=" + FallbackName, "-c", "user.email=" + FallbackEmail}, args...)
	}
	_, err := c.Run(args...)
	return err
}

func (c *Client) hasIdentity() bool {
	for _, key := range []string{"user.name", "user.email"} {
		out, err := c.Run("config", "--get", key)
		if err != nil || out == "" {
			return false
		}
	}
	return true
}

// HasStagedChanges reports whether the index differs from HEAD.
func (c *Client) HasStagedChanges() (bool, error) {
	_, err := c.Run("diff", "--cached", "--quiet")
	if err == nil {
		return false, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, err
}

// Unstage resets the index entries of files to HEAD. Before the first
// commit there is no HEAD, so the entries are dropped from the index.
func (c *Client) Unstage(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"reset", "-q", "--"}, files...)
	if !c.hasHead() {
		args = append([]string{"rm", "--cached", "-q", "--ignore-unmatch", "--"}, files...)
	}
	_, err := c.Run(args...)
	return err
}

func (c *Client) hasHead() bool {
	_, err := c.Run("rev-parse", "--verify", "-q", "HEAD")
	return err == nil
}

// Status returns the porcelain status of the repo.
func (c *Client) Status() (string, error) {
	return c.Run("status", "--porcelain")
}

// Log returns the subjects of the last n commits, newest first.
func (c *Client) Log(n int) ([]string, error) {
	out, err := c.Run("log", fmt.Sprintf("-%d", n), "--pretty=format:%s")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// subcommand returns the git verb in args, skipping global options.
func subcommand(args []string) string {
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-c" || args[i] == "-C":
			i++
		case strings.HasPrefix(args[i], "-"):
		default:
			return args[i]
		}
	}
	return "command"
}
