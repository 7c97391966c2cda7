// Package shell provides a process executor for CMake invocations.
package shell

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/cmakekit/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Process represents a running command.
type Process interface {
	Wait() error
	Resize(rows, cols int) error
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()

	// Drain what's left in the pty before reporting.
	<-p.ioDone

	return err
}

func (p *ptyProcess) Resize(rows, cols int) error {
	if rows > math.MaxUint16 || cols > math.MaxUint16 || rows < 0 || cols < 0 {
		return errors.New("terminal size out of bounds")
	}

	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

type pipeProcess struct {
	cmd *exec.Cmd
}

func (p *pipeProcess) Wait() error {
	return p.cmd.Wait()
}

func (p *pipeProcess) Resize(_, _ int) error {
	return nil
}

// Executor implements ports.Executor using os/exec and pty.
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates a new Executor attached to the process's standard streams.
func NewExecutor() *Executor {
	return NewExecutorWithStreams(os.Stdin, os.Stdout, os.Stderr)
}

// NewExecutorWithStreams creates an Executor whose debug sessions use the given streams.
func NewExecutorWithStreams(stdin io.Reader, stdout, stderr io.Writer) *Executor {
	return &Executor{stdin: stdin, stdout: stdout, stderr: stderr}
}

// Start launches the invocation in a PTY, or with standard pipes where PTYs are unsupported.
func (e *Executor) Start(
	ctx context.Context,
	inv *domain.Invocation,
	stdout, stderr io.Writer,
) (Process, error) {
	if inv.Command == "" {
		return nil, nil
	}

	cmd := command(ctx, inv.Command, inv.Args, inv)

	ptmx, err := pty.Start(cmd)
	if errors.Is(err, pty.ErrUnsupported) {
		cmd = command(ctx, inv.Command, inv.Args, inv)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Start(); err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "command", inv.Command)
		}
		return &pipeProcess{cmd: cmd}, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start pty"), "command", inv.Command)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()

		// The pty merges stdout and stderr.
		_, _ = io.Copy(stdout, ptmx)
	}()

	return &ptyProcess{
		cmd:    cmd,
		ptmx:   ptmx,
		ioDone: ioDone,
	}, nil
}

// Execute runs the invocation and waits for it to complete.
// Invocations carrying a debug session run interactively on the terminal.
func (e *Executor) Execute(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error {
	if inv.Debug != nil {
		return e.debug(ctx, inv)
	}

	proc, err := e.Start(ctx, inv, stdout, stderr)
	if err != nil {
		return err
	}
	if proc == nil {
		return nil
	}

	if f, ok := e.stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, rows, sizeErr := term.GetSize(int(f.Fd())); sizeErr == nil {
			_ = proc.Resize(rows, cols)
		}
	}

	return exitError(proc.Wait())
}

func (e *Executor) debug(ctx context.Context, inv *domain.Invocation) error {
	argv := make([]string, 0, len(inv.Debug.Launcher)+len(inv.Args)+1)
	argv = append(argv, inv.Debug.Launcher...)
	argv = append(argv, inv.Command)
	argv = append(argv, inv.Args...)

	cmd := command(ctx, argv[0], argv[1:], inv)
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start debug session"), "session", inv.Debug.Name)
	}
	return exitError(cmd.Wait())
}

func command(ctx context.Context, name string, args []string, inv *domain.Invocation) *exec.Cmd {
	cmdEnv := resolveEnvironment(os.Environ(), inv.Env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // invocation built from project config
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if inv.WorkingDir != "" {
		cmd.Dir = inv.WorkingDir
	}
	cmd.Env = cmdEnv
	return cmd
}

func exitError(err error) error {
	if err == nil {
		return nil
	}

	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}
	return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
}

// resolveEnvironment overlays overrides on the inherited environment.
// Inherited entries keep their position; new keys are appended in override order.
func resolveEnvironment(sysEnv []string, overrides domain.Vars) []string {
	result := make([]string, 0, len(sysEnv)+overrides.Len())
	seen := make(map[string]bool, overrides.Len())
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if ok {
			if v, overridden := overrides.Get(k); overridden {
				result = append(result, k+"="+v)
				seen[k] = true
				continue
			}
		}
		result = append(result, entry)
	}
	for k, v := range overrides.All() {
		if !seen[k] {
			result = append(result, k+"="+v)
		}
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
