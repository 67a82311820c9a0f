// Package viewer opens an exported PDF in the first installed viewer.
package viewer

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/pders01/drclip/internal/config"
	"github.com/pders01/drclip/internal/debuglog"
)

var ErrNoViewer = errors.New("no PDF viewer found")

// alias maps a viewer name that is not itself an executable to the command
// that launches it.
type alias struct {
	bin  string
	args []string
}

var aliases = map[string]alias{
	"preview": {bin: "open", args: []string{"-a", "Preview"}},
	"start":   {bin: "cmd", args: []string{"/c", "start", ""}},
}

type Viewer struct {
	candidates []string
	lookPath   func(string) (string, error)
}

// New uses the viewer candidates configured for the running platform.
func New(cfg *config.Config) *Viewer {
	return &Viewer{
		candidates: cfg.Viewer.ForOS(),
		lookPath:   exec.LookPath,
	}
}

// findCommand returns the first candidate whose executable is installed.
func (v *Viewer) findCommand() (string, bool) {
	for _, name := range v.candidates {
		bin := name
		if a, ok := aliases[name]; ok {
			bin = a.bin
		}
		if _, err := v.lookPath(bin); err == nil {
			return name, true
		}
	}
	return "", false
}

// Command builds the command that opens path.
func (v *Viewer) Command(path string) (*exec.Cmd, error) {
	name, ok := v.findCommand()
	if !ok {
		return nil, ErrNoViewer
	}
	if a, ok := aliases[name]; ok {
		args := append(append([]string(nil), a.args...), path)
		return exec.Command(a.bin, args...), nil
	}
	return exec.Command(name, path), nil
}

// Open starts the viewer detached and returns without waiting for it.
func (v *Viewer) Open(path string) error {
	cmd, err := v.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	debuglog.WithFields(debuglog.Fields{"viewer": cmd.Path, "path": path}).Infof("viewer started")
	return cmd.Process.Release()
}
