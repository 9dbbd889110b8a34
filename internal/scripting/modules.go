package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/action"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/character"
	"github.com/VersallesRPG/ordem-paranormal-v13.1/internal/game/ruleset"
)

// registerModules installs the sheet global into L:
//
//	sheet.roll_attribute(name) -> total, formula
//	sheet.roll_skill(name)     -> total, formula
//	sheet.roll(expr)           -> total, {kept dice}
//	sheet.derived()            -> {level, per_turn_effort_limit, ritual_difficulty, passive_defense}
//	sheet.attribute(name)      -> score
//	sheet.visual_state()       -> "normal" | "shaken" | "insane"
//	sheet.log.debug|info|warn|error(msg)
//
// Every check is appended to out.Rolls. Bad names raise a Lua error.
//
// Precondition: L must be from NewSandboxedState.
func (r *Runner) registerModules(L *lua.LState, c character.Character, out *Output) {
	sheet := L.NewTable()

	check := func(actionName string) lua.LGFunction {
		return func(L *lua.LState) int {
			res, err := r.actions.Dispatch(actionName, c, L.CheckString(1))
			if err != nil {
				L.RaiseError("%s", err.Error())
				return 0
			}
			out.Rolls = append(out.Rolls, res)
			L.Push(lua.LNumber(res.Total))
			L.Push(lua.LString(res.Formula))
			return 2
		}
	}
	L.SetField(sheet, "roll_attribute", L.NewFunction(check(action.NameRollAttribute)))
	L.SetField(sheet, "roll_skill", L.NewFunction(check(action.NameRollSkill)))

	L.SetField(sheet, "roll", L.NewFunction(func(L *lua.LState) int {
		res, err := r.roller.RollExpr(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		kept := L.NewTable()
		for _, d := range res.Dice {
			kept.Append(lua.LNumber(d))
		}
		L.Push(lua.LNumber(res.Total()))
		L.Push(kept)
		return 2
	}))

	L.SetField(sheet, "derived", L.NewFunction(func(L *lua.LState) int {
		d := c.Derived()
		t := L.NewTable()
		L.SetField(t, "level", lua.LNumber(d.Level))
		L.SetField(t, "per_turn_effort_limit", lua.LNumber(d.PerTurnEffortLimit))
		L.SetField(t, "ritual_difficulty", lua.LNumber(d.RitualDifficulty))
		L.SetField(t, "passive_defense", lua.LNumber(d.PassiveDefense))
		L.Push(t)
		return 1
	}))

	L.SetField(sheet, "attribute", L.NewFunction(func(L *lua.LState) int {
		attr, err := ruleset.ParseAttribute(L.CheckString(1))
		if err != nil {
			L.RaiseError("%s", err.Error())
			return 0
		}
		L.Push(lua.LNumber(c.Attributes.Score(attr)))
		return 1
	}))

	L.SetField(sheet, "visual_state", L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(c.VisualState()))
		return 1
	}))

	logTable := L.NewTable()
	for level, fn := range map[string]func(string, ...zap.Field){
		"debug": r.logger.Debug,
		"info":  r.logger.Info,
		"warn":  r.logger.Warn,
		"error": r.logger.Error,
	} {
		L.SetField(logTable, level, L.NewFunction(func(L *lua.LState) int {
			fn("scripting: macro log", zap.String("message", L.CheckString(1)))
			return 0
		}))
	}
	L.SetField(sheet, "log", logTable)

	L.SetGlobal("sheet", sheet)
}
