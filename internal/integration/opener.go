package integration

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/spf13/afero"
)

// Opener asks the operating system to open a path with its default handler.
type Opener interface {
	Open(path string) error
}

// systemOpener implements Opener by running the platform open command.
type systemOpener struct {
	fs  afero.Fs
	run func(name string, args ...string) error
}

// NewSystemOpener creates an Opener that checks paths against fsys and hands
// them to the platform handler (see openCommand).
func NewSystemOpener(fsys afero.Fs) Opener {
	return &systemOpener{fs: fsys, run: runCommand}
}

// NewSystemOpenerWithRunner creates an Opener with an injected command
// runner. It is intended for tests.
func NewSystemOpenerWithRunner(fsys afero.Fs, run func(name string, args ...string) error) Opener {
	return &systemOpener{fs: fsys, run: run}
}

// Open validates path, confirms it exists and runs the platform handler.
func (o *systemOpener) Open(path string) error {
	if path == "" || strings.ContainsRune(path, 0) {
		return &models.PathError{Kind: models.KindInvalidArgument, Input: path, Err: fmt.Errorf("not an openable path")}
	}
	if _, err := o.fs.Stat(path); err != nil {
		return &models.PathError{Kind: models.KindOpenFailed, Input: path, Err: err}
	}

	name, args := openCommand(path)
	if err := o.run(name, args...); err != nil {
		return &models.PathError{Kind: models.KindOpenFailed, Input: path, Err: fmt.Errorf("running %s: %w", name, err)}
	}
	return nil
}

// runCommand runs name and waits for it, folding any output into the error.
func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
