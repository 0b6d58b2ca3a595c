// Package gitops keeps a ledgerview project directory under version control
// so edits to accounts.csv can be diffed and rolled back.
package gitops

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Identity is the name and email recorded on commits.
type Identity struct {
	Name  string
	Email string
}

// DefaultIdentity signs commits made by the CLI itself.
var DefaultIdentity = Identity{Name: "ledgerview", Email: "ledgerview@localhost"}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init initializes a new git repository at dir. It is a no-op when dir
// already is one.
func Init(ctx context.Context, dir string) error {
	if IsRepo(dir) {
		return nil
	}
	if _, err := run(ctx, dir, Identity{}, "init", "--quiet"); err != nil {
		return err
	}
	return nil
}

// CommitAll stages every change under dir and commits it as who. It returns
// the short hash of the new commit.
func CommitAll(ctx context.Context, dir, message string, who Identity) (string, error) {
	if _, err := run(ctx, dir, who, "add", "-A"); err != nil {
		return "", err
	}
	if _, err := run(ctx, dir, who, "commit", "--quiet", "-m", message); err != nil {
		return "", err
	}
	out, err := run(ctx, dir, who, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether dir is the top of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// run executes git in dir. A non-empty identity is passed with -c so both
// author and committer are set without touching the user's git config.
func run(ctx context.Context, dir string, who Identity, args ...string) (string, error) {
	var full []string
	if who.Name != "" {
		full = append(full, "-c", "user.name="+who.Name, "-c", "user.email="+who.Email)
	}
	full = append(full, args...)

	cmd := exec.CommandContext(ctx, "git", full...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %s: %w", args[0], strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}
