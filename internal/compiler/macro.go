package compiler

import (
	_ "embed"
	"log/slog"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/golangsnmp/mibtext/mib"
)

// macro_compat.yaml patches TYPE NOTATION keys missing from the macro
// declarations of specific foundational modules. Data-driven so further
// real-world irregularities can be added without touching code.
//
//go:embed macro_compat.yaml
var macroCompatYAML []byte

var (
	macroCompatOnce sync.Once
	macroCompat     map[string]map[string][]string
)

func compatKeys(moduleName, macroName string) []string {
	macroCompatOnce.Do(func() {
		if err := yaml.Unmarshal(macroCompatYAML, &macroCompat); err != nil {
			// The table ships with the binary; failing to parse it is a bug.
			panic("compiler: invalid macro_compat.yaml: " + err.Error())
		}
	})
	return macroCompat[moduleName][macroName]
}

// compileMacro consumes a MACRO definition starting at the MACRO keyword
// and registers the finished macro on the module. Returns the index of
// the macro's END token.
//
// The recognized field keys come from the TYPE NOTATION block: every
// keyword-shaped token before VALUE NOTATION. DESCRIPTION is always
// recognized even when a historical macro omits it.
func (c *Compiler) compileMacro(mod *mib.Module, tokens []token, at int) int {
	if at < 1 {
		return at
	}
	m := &mib.Macro{Name: tokens[at-1].text, ModuleName: mod.Name}

	i := at + 1
	inTypeNotation := false
	for ; i < len(tokens); i++ {
		switch tokens[i].text {
		case "END":
			c.registerMacro(mod, m)
			return i
		case "TYPE":
			if i+1 < len(tokens) && tokens[i+1].text == "NOTATION" {
				inTypeNotation = true
				i++
			}
		case "VALUE":
			if i+1 < len(tokens) && tokens[i+1].text == "NOTATION" {
				inTypeNotation = false
				i++
			}
		case "::=", "|":
			// structural tokens inside the notation grammar
		default:
			if inTypeNotation && isMacroShaped(tokens[i].text) {
				m.AddKey(tokens[i].text)
			}
		}
	}

	// Unterminated macro body; register what was collected.
	c.registerMacro(mod, m)
	return i
}

func (c *Compiler) registerMacro(mod *mib.Module, m *mib.Macro) {
	m.AddKey("DESCRIPTION")
	for _, key := range compatKeys(mod.Name, m.Name) {
		m.AddKey(key)
	}
	mod.Macros[m.Name] = m
	c.Log(slog.LevelDebug, "macro registered",
		slog.String("module", mod.Name),
		slog.String("macro", m.Name),
		slog.Int("keys", len(m.Keys)))
}
