// Package git answers the few repository questions the editor asks by running
// the git CLI in the workspace directory.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNoRemote is returned when the repository has no origin remote.
var ErrNoRemote = errors.New("repository has no origin remote")

// Status is the state of a single file in the index and work tree.
type Status int

const (
	StatusUnknown Status = iota
	StatusClean
	StatusUntracked
	StatusModified
	StatusStaged
	StatusPartiallyStaged
)

func (s Status) String() string {
	switch s {
	case StatusClean:
		return "ok"
	case StatusUntracked:
		return "untracked"
	case StatusModified:
		return "modified"
	case StatusStaged:
		return "staged"
	case StatusPartiallyStaged:
		return "partially staged"
	default:
		return ""
	}
}

func run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return "", fmt.Errorf("git %s: %w", args[0], err)
		}
		return "", fmt.Errorf("git %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

// FileStatus reports the status of path. Paths outside a repository report
// StatusUnknown without an error.
func FileStatus(ctx context.Context, path string) Status {
	out, err := run(ctx, filepath.Dir(path), "status", "--porcelain=v1", "--", filepath.Base(path))
	if err != nil {
		return StatusUnknown
	}
	return ParseStatus(out)
}

// ParseStatus interprets the first line of porcelain v1 output.
func ParseStatus(porcelain string) Status {
	line, _, _ := strings.Cut(porcelain, "\n")
	if len(line) < 2 {
		return StatusClean
	}
	x, y := line[0], line[1]
	switch {
	case x == '?' && y == '?':
		return StatusUntracked
	case x != ' ' && y == ' ':
		return StatusStaged
	case x == ' ' && y != ' ':
		return StatusModified
	default:
		return StatusPartiallyStaged
	}
}

// Add stages path.
func Add(ctx context.Context, path string) error {
	_, err := run(ctx, filepath.Dir(path), "add", "--", filepath.Base(path))
	return err
}

// RemoteFileURL builds a browsable URL for path at the current HEAD, anchored
// to a 1-based line.
func RemoteFileURL(ctx context.Context, path string, line int) (string, error) {
	dir := filepath.Dir(path)
	remote, err := run(ctx, dir, "config", "--get", "remote.origin.url")
	if err != nil || strings.TrimSpace(remote) == "" {
		return "", ErrNoRemote
	}
	root, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	sha, err := run(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(strings.TrimSpace(root), path)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	base, err := WebURL(strings.TrimSpace(remote))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/blob/%s/%s#L%d", base, strings.TrimSpace(sha), filepath.ToSlash(rel), line), nil
}

// WebURL converts an ssh or https remote into the repository's web URL.
func WebURL(remote string) (string, error) {
	url := strings.TrimSuffix(remote, ".git")
	switch {
	case strings.HasPrefix(url, "https://"), strings.HasPrefix(url, "http://"):
		return url, nil
	case strings.HasPrefix(url, "ssh://"):
		url = strings.TrimPrefix(url, "ssh://")
		url = url[strings.IndexByte(url, '@')+1:]
		return "https://" + url, nil
	case strings.Contains(url, "@") && strings.Contains(url, ":"):
		host, repo, _ := strings.Cut(url[strings.IndexByte(url, '@')+1:], ":")
		return "https://" + host + "/" + repo, nil
	}
	return "", fmt.Errorf("unsupported remote %q", remote)
}
