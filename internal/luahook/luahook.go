// Package luahook runs user-supplied Lua filters over located matches.
//
// A filter script may declare an options table, read once at load time, a
// filter function, called per match, and a render function, called per kept
// match:
//
//	options = { min_clusters = 2, label = "wide" }
//
//	function filter(m)
//	    -- m.file, m.pattern, m.start, m.stop, m.text
//	    return m.text ~= "|"
//	end
//
//	function render(m)
//	    return m.text .. " (" .. (m.stop - m.start) .. " clusters)"
//	end
//
// A falsy filter return drops the match. A string render return replaces
// the match text in output; any other value keeps the default. Any global
// may be omitted.
package luahook

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yuin/gluamapper"
	lua "github.com/yuin/gopher-lua"
)

var (
	// ErrFilterClosed is returned when using a closed filter.
	ErrFilterClosed = errors.New("lua filter is closed")
	// ErrNotFunction indicates a hook global that is not a function.
	ErrNotFunction = errors.New("hook global is not a function")
	// ErrBadOptions indicates an options global that is not a table.
	ErrBadOptions = errors.New("options global is not a table")
)

// Match is the view of one located match handed to Lua.
type Match struct {
	File    string
	Pattern string
	Start   int
	Stop    int
	Text    string
}

// Options are script-declared settings applied on the Go side, so cheap
// drops never enter the Lua state.
type Options struct {
	// MinClusters drops matches narrower than this many clusters.
	MinClusters int
	// Label overrides the pattern name on kept matches.
	Label string
}

// Filter wraps one Lua state holding a loaded filter script.
//
// gopher-lua's LState is not goroutine-safe, so every call into the state is
// serialized behind a mutex. Keep and Render may be called from concurrent
// scanners.
type Filter struct {
	mu     sync.Mutex
	state  *lua.LState
	fn     lua.LValue
	render lua.LValue
	opts   Options
	closed bool
}

// Load reads and executes the script at path, captures its options table,
// and resolves its filter and render functions.
func Load(path string) (*Filter, error) {
	L := lua.NewState()

	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading filter script %s: %w", path, err)
	}

	f := &Filter{state: L}

	switch opts := L.GetGlobal("options").(type) {
	case *lua.LNilType:
	case *lua.LTable:
		if err := gluamapper.Map(opts, &f.opts); err != nil {
			L.Close()
			return nil, fmt.Errorf("reading options from %s: %w", path, err)
		}
	default:
		L.Close()
		return nil, fmt.Errorf("%w in %s", ErrBadOptions, path)
	}
	if f.opts.MinClusters < 0 {
		f.opts.MinClusters = 0
	}

	switch fn := L.GetGlobal("filter").(type) {
	case *lua.LNilType:
	case *lua.LFunction:
		f.fn = fn
	default:
		L.Close()
		return nil, fmt.Errorf("%w: filter in %s", ErrNotFunction, path)
	}

	switch fn := L.GetGlobal("render").(type) {
	case *lua.LNilType:
	case *lua.LFunction:
		f.render = fn
	default:
		L.Close()
		return nil, fmt.Errorf("%w: render in %s", ErrNotFunction, path)
	}

	return f, nil
}

// Options returns the script-declared options.
func (f *Filter) Options() Options {
	return f.opts
}

// Keep reports whether the match survives the filter. The MinClusters check
// runs first, without entering Lua.
func (f *Filter) Keep(m Match) (bool, error) {
	if m.Stop-m.Start < f.opts.MinClusters {
		return false, nil
	}
	if f.fn == nil {
		return true, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return false, ErrFilterClosed
	}

	L := f.state
	if err := L.CallByParam(lua.P{
		Fn:      f.fn,
		NRet:    1,
		Protect: true,
	}, f.matchToTable(m)); err != nil {
		return false, fmt.Errorf("filter call: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	return !lua.LVIsFalse(ret), nil
}

// Render passes the match through the script's render function. ok reports
// whether the script produced replacement text; without a render function,
// or for a non-string return, the caller keeps its default rendering.
func (f *Filter) Render(m Match) (string, bool, error) {
	if f.render == nil {
		return "", false, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return "", false, ErrFilterClosed
	}

	L := f.state
	if err := L.CallByParam(lua.P{
		Fn:      f.render,
		NRet:    1,
		Protect: true,
	}, f.matchToTable(m)); err != nil {
		return "", false, fmt.Errorf("render call: %w", err)
	}

	ret := L.Get(-1)
	L.Pop(1)
	if s, ok := ret.(lua.LString); ok {
		return string(s), true, nil
	}
	return "", false, nil
}

// matchToTable converts a Match to the Lua table the script sees. The end
// index is exposed as "stop" because "end" is a Lua keyword.
func (f *Filter) matchToTable(m Match) *lua.LTable {
	L := f.state
	tbl := L.NewTable()
	L.SetField(tbl, "file", lua.LString(m.File))
	L.SetField(tbl, "pattern", lua.LString(m.Pattern))
	L.SetField(tbl, "start", lua.LNumber(m.Start))
	L.SetField(tbl, "stop", lua.LNumber(m.Stop))
	L.SetField(tbl, "text", lua.LString(m.Text))
	return tbl
}

// Close releases the Lua state. Further Keep or Render calls return
// ErrFilterClosed.
func (f *Filter) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	f.state.Close()
}
