// Package automation drives host parameters from Lua scripts during offline
// rendering.
//
// A script defines
//
//	function automate(t, row)
//	  return { trigger = t > 0.5, pitch = 40 + 20 * math.sin(t) }
//	end
//
// automate is called once per block and row with the block start time in
// seconds. Keys left out of the returned table keep their current value;
// returning nil changes nothing.
package automation

import (
	"errors"
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/cwbudde/algo-vibrato/host"
)

// FuncName is the global function a script must define.
const FuncName = "automate"

// ErrScript wraps every load and evaluation failure.
var ErrScript = errors.New("automation: script error")

// Keys lists the table keys a script may return.
var Keys = []string{
	host.NameTrigger,
	host.NameOnset,
	host.NameRate,
	host.NamePitch,
	host.NameAmplitude,
	host.NameFormant,
	host.NameVariation,
}

// Script is a loaded automation script. It is not safe for concurrent use.
type Script struct {
	name  string
	state *lua.LState
	fn    *lua.LFunction
}

// Load compiles and runs the script at path.
func Load(path string) (*Script, error) {
	return load(path, func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadString compiles and runs src; name is used in error messages.
func LoadString(name, src string) (*Script, error) {
	return load(name, func(L *lua.LState) error { return L.DoString(src) })
}

func load(name string, run func(*lua.LState) error) (*Script, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.open))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	if err := run(L); err != nil {
		L.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrScript, name, err)
	}

	fn, ok := L.GetGlobal(FuncName).(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, fmt.Errorf("%w: %s: function %s not defined", ErrScript, name, FuncName)
	}
	return &Script{name: name, state: L, fn: fn}, nil
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.state.Close()
}

// Name returns the path or name the script was loaded from.
func (s *Script) Name() string { return s.name }

// Evaluate calls automate(t, row) and returns the parameter values it set,
// keyed by parameter name. Booleans map to 0 and 1.
func (s *Script) Evaluate(t float64, row int) (map[string]float64, error) {
	err := s.state.CallByParam(lua.P{Fn: s.fn, NRet: 1, Protect: true}, lua.LNumber(t), lua.LNumber(row))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrScript, s.name, err)
	}
	ret := s.state.Get(-1)
	s.state.Pop(1)

	if ret == lua.LNil {
		return nil, nil
	}
	tbl, ok := ret.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: %s: %s returned %s, want table", ErrScript, s.name, FuncName, ret.Type())
	}

	out := make(map[string]float64)
	var bad error
	tbl.ForEach(func(k, v lua.LValue) {
		if bad != nil {
			return
		}
		key, ok := k.(lua.LString)
		if !ok || !isKey(string(key)) {
			bad = fmt.Errorf("%w: %s: unknown key %s", ErrScript, s.name, k.String())
			return
		}
		switch v := v.(type) {
		case lua.LNumber:
			out[string(key)] = float64(v)
		case lua.LBool:
			out[string(key)] = 0
			if v {
				out[string(key)] = 1
			}
		default:
			bad = fmt.Errorf("%w: %s: key %s has %s value", ErrScript, s.name, key, v.Type())
		}
	})
	if bad != nil {
		return nil, bad
	}
	return out, nil
}

// Apply evaluates the script for every row at time t and writes the results
// into store. Values are clamped by the store.
func (s *Script) Apply(t float64, store *host.Store) error {
	for row := 1; row <= host.Rows; row++ {
		values, err := s.Evaluate(t, row)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := store.Set(host.ParamID(row, name), values[name]); err != nil {
				return err
			}
		}
	}
	return nil
}

func isKey(name string) bool {
	for _, k := range Keys {
		if k == name {
			return true
		}
	}
	return false
}
