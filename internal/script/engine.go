// Package script runs Lua scripts against a command-log session.
//
// Scripts execute in a sandboxed gopher-lua state: only the base, table,
// string and math libraries are opened and the loaders (dofile, loadfile,
// load, loadstring, require) are removed. The global table fs exposes the
// session:
//
//	fs.create(path, content)  fs.delete(path)  fs.move(src, dst)
//	fs.write(path, content)   fs.read(path)    fs.exists(path)
//	fs.undo()  fs.redo()  fs.list()  fs.show(title)
//	fs.begin_group(name)  fs.end_group()
//
// Command failures raise Lua errors, so scripts can catch them with pcall.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/patternlab/internal/session"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// ErrEngineClosed is returned when running on a closed engine.
var ErrEngineClosed = errors.New("script engine is closed")

// Engine owns one Lua state bound to one session.
//
// gopher-lua states are not goroutine-safe; Engine serializes runs with a
// mutex.
type Engine struct {
	mu      sync.Mutex
	L       *lua.LState
	session *session.Session
	out     io.Writer
	timeout time.Duration
	closed  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each run. Zero disables the limit.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithOutput redirects Lua print. Defaults to the session printer's writer.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) { e.out = w }
}

// New creates an engine for s.
func New(s *session.Session, opts ...Option) *Engine {
	e := &Engine{
		session: s,
		out:     s.Printer().Writer(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	L.SetGlobal("print", L.NewFunction(e.print))
	L.SetGlobal("fs", newFSModule(e.session).table(L))

	e.L = L
	return e
}

// RunString executes Lua source.
func (e *Engine) RunString(ctx context.Context, code string) error {
	return e.run(ctx, func() error { return e.L.DoString(code) })
}

// RunFile executes a Lua file.
func (e *Engine) RunFile(ctx context.Context, path string) error {
	return e.run(ctx, func() error { return e.L.DoFile(path) })
}

// Close releases the Lua state.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.L.Close()
		e.closed = true
	}
}

func (e *Engine) run(ctx context.Context, fn func() error) (err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return ErrEngineClosed
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("script aborted: %w", ctxErr)
		}
		return err
	}
	return nil
}

// print writes its arguments separated by tabs.
func (e *Engine) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	fmt.Fprintln(e.out, strings.Join(parts, "\t"))
	return 0
}
