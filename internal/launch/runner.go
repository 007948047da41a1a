package launch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Request describes one process launch.
type Request struct {
	Executable string
	BottleName string
	BottlePath string
	WineBinary string
	Locale     string
	WineDebug  string
}

// Process is a handle to a launched instance.
type Process interface {
	PID() int
	// Wait blocks until the process exits. A non-zero exit status is not
	// an error here; the session still happened.
	Wait() error
}

// Runner starts instance processes.
type Runner interface {
	Start(ctx context.Context, req Request) (Process, error)
}

// WineRunner launches executables through CrossOver's bundled wine.
type WineRunner struct{}

var _ Runner = (*WineRunner)(nil)

type wineProcess struct {
	cmd *exec.Cmd
}

func (p *wineProcess) PID() int { return p.cmd.Process.Pid }

func (p *wineProcess) Wait() error {
	err := p.cmd.Wait()
	if _, exited := err.(*exec.ExitError); exited {
		return nil
	}
	return err
}

// Start validates the executable and wine binary, then spawns wine with the
// bottle environment. The executable check exists because a game on a
// detached external disk is the common failure, and the wine error for it
// is unhelpful.
func (r *WineRunner) Start(ctx context.Context, req Request) (Process, error) {
	if _, err := os.Stat(req.Executable); err != nil {
		return nil, fmt.Errorf("executable not found (disk disconnected?): %q: %w", req.Executable, err)
	}
	if _, err := os.Stat(req.WineBinary); err != nil {
		return nil, fmt.Errorf("crossover wine binary not found, check the app path: %q: %w", req.WineBinary, err)
	}
	bottleName := req.BottleName
	if bottleName == "" {
		bottleName = filepath.Base(req.BottlePath)
	}
	if strings.TrimSpace(bottleName) == "" || bottleName == "." {
		return nil, fmt.Errorf("cannot resolve bottle name from %q", req.BottlePath)
	}

	cmd := exec.CommandContext(ctx, req.WineBinary, req.Executable)
	cmd.Env = append(os.Environ(),
		"CX_BOTTLE="+bottleName,
		"WINEPREFIX="+req.BottlePath,
		"WINEDEBUG="+req.WineDebug,
		"LC_ALL="+req.Locale,
	)
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start wine: %w", err)
	}
	return &wineProcess{cmd: cmd}, nil
}
