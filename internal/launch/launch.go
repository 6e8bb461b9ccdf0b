// Package launch starts the target of a shortcut and checks whether a
// target can be started at all.
package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrEmptyTarget is returned when launching a shortcut without a target
var ErrEmptyTarget = errors.Base("empty target")

// Launcher starts shortcut targets
type Launcher interface {
	Launch(target, args string) error
}

var textExtensions = []string{".txt", ".md", ".log", ".conf", ".cfg"}

// Exec launches targets as detached processes. URLs and text files go to the
// platform opener, everything else runs through the shell.
type Exec struct {
	// Start runs cmd without waiting for it; replaced in tests
	Start func(cmd *exec.Cmd) error
	OS    string

	log zerolog.Logger
}

// NewExec creates a launcher for the current platform
func NewExec(logger zerolog.Logger) *Exec {
	return &Exec{
		Start: func(cmd *exec.Cmd) error { return cmd.Start() },
		OS:    runtime.GOOS,
		log:   logger.With().Str("component", "launch").Logger(),
	}
}

// Launch implements Launcher
func (e *Exec) Launch(target, args string) error {
	if target == "" {
		e.log.Warn().Msg("attempted to launch empty path")
		return errors.WithStack(ErrEmptyTarget)
	}

	cmdline := target
	if args != "" {
		cmdline = target + " " + args
	}
	e.log.Info().Str("cmd", cmdline).Msg("launching")

	var cmd *exec.Cmd
	switch {
	case IsURL(target):
		cmd = e.opener(target, false)
	case slices.Contains(textExtensions, strings.ToLower(filepath.Ext(target))):
		cmd = e.opener(target, true)
	default:
		cmd = e.shell(cmdline)
		expanded := Expand(target)
		if filepath.IsAbs(expanded) {
			if _, err := os.Stat(expanded); err == nil {
				cmd.Dir = filepath.Dir(expanded)
				e.log.Info().Str("dir", cmd.Dir).Msg("setting working directory")
			}
		}
	}

	if err := e.Start(cmd); err != nil {
		e.log.Error().Err(err).Str("path", target).Msg("launch error")
		return errors.Errorf("launching %q: %w", target, err)
	}
	return nil
}

func (e *Exec) opener(target string, text bool) *exec.Cmd {
	switch e.OS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		if text {
			return exec.Command("notepad", target)
		}
		return exec.Command("cmd", "/c", "start", "", target)
	default:
		return exec.Command("xdg-open", target)
	}
}

func (e *Exec) shell(cmdline string) *exec.Cmd {
	if e.OS == "windows" {
		return exec.Command("cmd", "/c", cmdline)
	}
	return exec.Command("/bin/sh", "-c", cmdline)
}

// IsURL reports whether target is an http(s) URL
func IsURL(target string) bool {
	return strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://")
}

// Expand expands environment variables and a leading ~ in a path
func Expand(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// Check reports whether target looks launchable: URLs always are, absolute
// paths must exist, anything else must name a command on PATH.
func Check(target string) bool {
	if target == "" {
		return false
	}
	if IsURL(target) {
		return true
	}

	expanded := Expand(target)
	if filepath.IsAbs(expanded) {
		_, err := os.Stat(expanded)
		return err == nil
	}

	fields := strings.Fields(target)
	if len(fields) == 0 {
		return false
	}
	_, err := exec.LookPath(fields[0])
	return err == nil
}
