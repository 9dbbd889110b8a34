package scripting

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
	"go.uber.org/zap"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/action"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/dice"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/roll"
)

// ErrUnknownMacro is returned by RunMacro when no macro has the given name.
var ErrUnknownMacro = errors.New("unknown macro")

// Output is what one macro run produced.
type Output struct {
	// Rolls lists every check the macro made, in order.
	Rolls []roll.Result
	// Returns holds the chunk's return values converted to Go: nil, bool,
	// float64, string, or map[string]any for tables.
	Returns []any
}

// Runner compiles macros once and runs each invocation in a fresh sandboxed
// VM, so runs never share Lua state.
//
// Runner is safe for concurrent use.
type Runner struct {
	mu        sync.RWMutex
	macros    map[string]*lua.FunctionProto
	actions   *action.Registry
	roller    *dice.Roller
	instLimit int
	logger    *zap.Logger
}

// NewRunner creates a Runner.
//
// Precondition: actions, roller and logger must be non-nil; instLimit <= 0
// uses DefaultInstructionLimit.
// Postcondition: Returns a non-nil Runner with no macros loaded.
func NewRunner(actions *action.Registry, roller *dice.Roller, instLimit int, logger *zap.Logger) *Runner {
	if actions == nil {
		panic("scripting.NewRunner: actions must not be nil")
	}
	if roller == nil {
		panic("scripting.NewRunner: roller must not be nil")
	}
	if logger == nil {
		panic("scripting.NewRunner: logger must not be nil")
	}
	return &Runner{
		macros:    make(map[string]*lua.FunctionProto),
		actions:   actions,
		roller:    roller,
		instLimit: instLimit,
		logger:    logger,
	}
}

// LoadDir compiles every *.lua file in dir as a macro named after the file
// without its extension. Files are processed in lexicographic order; a later
// load replaces a macro of the same name.
//
// Precondition: dir must be a readable directory.
// Postcondition: on error no macro from dir is registered.
func (r *Runner) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading macro dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	compiled := make(map[string]*lua.FunctionProto, len(luaFiles))
	for _, path := range luaFiles {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scripting: reading %q: %w", path, err)
		}
		name := strings.TrimSuffix(filepath.Base(path), ".lua")
		proto, err := compile(name, string(src))
		if err != nil {
			return err
		}
		compiled[name] = proto
	}

	r.mu.Lock()
	for name, proto := range compiled {
		r.macros[name] = proto
	}
	r.mu.Unlock()
	r.logger.Info("scripting: macros loaded",
		zap.String("dir", dir),
		zap.Int("count", len(compiled)),
	)
	return nil
}

// Macros returns the names of all loaded macros, sorted.
func (r *Runner) Macros() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.macros))
	for name := range r.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunMacro runs the loaded macro name against c.
//
// Postcondition: returns an error wrapping ErrUnknownMacro when name is not loaded.
func (r *Runner) RunMacro(ctx context.Context, c character.Character, name string) (Output, error) {
	r.mu.RLock()
	proto, ok := r.macros[name]
	r.mu.RUnlock()
	if !ok {
		return Output{}, fmt.Errorf("scripting: %w: %q", ErrUnknownMacro, name)
	}
	return r.exec(ctx, c, name, proto)
}

// Run compiles and runs source against c without registering it.
//
// Lua runtime errors, including exceeding the instruction limit, are logged at
// Warn level and returned. Rolls made before the failure are still reported.
func (r *Runner) Run(ctx context.Context, c character.Character, source string) (Output, error) {
	proto, err := compile("inline", source)
	if err != nil {
		return Output{}, err
	}
	return r.exec(ctx, c, "inline", proto)
}

func compile(name, source string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(strings.NewReader(source), name)
	if err != nil {
		return nil, fmt.Errorf("scripting: parsing %q: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("scripting: compiling %q: %w", name, err)
	}
	return proto, nil
}

func (r *Runner) exec(ctx context.Context, c character.Character, name string, proto *lua.FunctionProto) (Output, error) {
	L, cancel := NewSandboxedState(ctx, r.instLimit)
	defer cancel()
	defer L.Close()

	out := &Output{}
	r.registerModules(L, c, out)

	base := L.GetTop()
	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		r.logger.Warn("scripting: Lua runtime error",
			zap.String("macro", name),
			zap.Error(err),
		)
		return Output{Rolls: out.Rolls}, fmt.Errorf("scripting: running %q: %w", name, err)
	}

	for i := base + 1; i <= L.GetTop(); i++ {
		out.Returns = append(out.Returns, toGo(L.Get(i), nil))
	}
	return *out, nil
}

// toGo converts a Lua value to its Go counterpart. Functions and userdata
// become their string form, as does a table that contains itself; seen holds
// the tables on the current conversion path.
func toGo(v lua.LValue, seen map[*lua.LTable]bool) any {
	switch v := v.(type) {
	case *lua.LNilType:
		return nil
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		return float64(v)
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if seen[v] {
			return v.String()
		}
		if seen == nil {
			seen = make(map[*lua.LTable]bool)
		}
		seen[v] = true
		m := make(map[string]any)
		v.ForEach(func(k, val lua.LValue) {
			m[k.String()] = toGo(val, seen)
		})
		delete(seen, v)
		return m
	default:
		return v.String()
	}
}
