// Package symtab implements the assembler's symbol table: case-insensitive
// global/local symbols scoped by zone, plus the anonymous forward/backward
// label vectors used by '+'/'-' references.
//
// Grounded on _examples/original_source/src/symbols.c (symbol_table_create,
// symbol_define, symbol_lookup, Scope, AnonLabels) and on the teacher's
// debugger/symbols.go for the Go map-based table idiom, substituting a plain
// map with case-folded keys for ASM64's hand-rolled djb2 hash table since Go
// maps already give O(1) lookup without the manual chaining.
package symtab

import (
	"fmt"
	"sort"
	"strings"
)

// Symbol is one entry in the table.
type Symbol struct {
	Name      string
	Value     int32
	ZeroPage  bool
	Defined   bool // false for a forward-referenced-but-not-yet-defined placeholder
	Constant  bool // defined via '=' rather than a label; rejects redefinition
	DefinedPC int32
	DefinedAt int // line number of the defining statement, for diagnostics
}

// Table is the assembler's symbol table for one assembly unit. Names are
// matched case-insensitively, mirroring symbol_hash's toupper folding.
type Table struct {
	symbols map[string]*Symbol
	zone    string
}

// New creates an empty symbol table in the global zone.
func New() *Table {
	return &Table{symbols: make(map[string]*Symbol), zone: ""}
}

func fold(name string) string { return strings.ToUpper(name) }

// Zone reports the current local-label zone name ("" for global scope).
func (t *Table) Zone() string { return t.zone }

// SetZone changes the active zone for subsequent local-label mangling.
func (t *Table) SetZone(zone string) { t.zone = zone }

// Mangle rewrites a local label name (beginning with '.') into its
// zone-qualified global form, mirroring symbols.c's mangle_local_name: a
// local label belongs to the nearest enclosing zone, or "_global" when no
// zone is active.
func (t *Table) Mangle(name string) string {
	if !strings.HasPrefix(name, ".") {
		return name
	}
	zone := t.zone
	if zone == "" {
		zone = "_global"
	}
	return zone + name
}

// Define creates or updates a symbol. Redefining an existing constant is
// rejected, even with the same value, matching symbol_define's
// SYM_FORCE_UPDATE gate (DefineForce bypasses it); redefining a label
// (non-constant) is allowed since pass 2 re-defines every label it saw in
// pass 1.
func (t *Table) Define(name string, value int32, zeroPage, constant bool) error {
	key := fold(name)
	if existing, ok := t.symbols[key]; ok && existing.Defined && existing.Constant {
		return fmt.Errorf("symbol %q already defined as %d, cannot redefine as %d", name, existing.Value, value)
	}
	t.symbols[key] = &Symbol{
		Name:     name,
		Value:    value,
		ZeroPage: zeroPage,
		Defined:  true,
		Constant: constant,
	}
	return nil
}

// DefineForce defines or overwrites name unconditionally, bypassing the
// constant-redefinition guard. Used for loop induction variables (!for)
// which are legitimately re-bound on every iteration.
func (t *Table) DefineForce(name string, value int32, zeroPage bool) {
	t.symbols[fold(name)] = &Symbol{Name: name, Value: value, ZeroPage: zeroPage, Defined: true, Constant: false}
}

// Reference records that name was used without (yet) being defined,
// creating an undefined placeholder so a later pass-1 definition can fill
// it in, mirroring symbol_reference.
func (t *Table) Reference(name string) {
	key := fold(name)
	if _, ok := t.symbols[key]; !ok {
		t.symbols[key] = &Symbol{Name: name, Defined: false}
	}
}

// Lookup implements expr.SymbolTable.
func (t *Table) Lookup(name string) (value int32, zeroPage bool, ok bool) {
	s, found := t.symbols[fold(name)]
	if !found || !s.Defined {
		return 0, false, false
	}
	return s.Value, s.ZeroPage, true
}

// IsDefined reports whether name has a value bound to it yet.
func (t *Table) IsDefined(name string) bool {
	s, ok := t.symbols[fold(name)]
	return ok && s.Defined
}

// Undefined returns every symbol referenced but never defined, for the
// end-of-assembly undefined-symbol diagnostic (symbol_check_undefined).
func (t *Table) Undefined() []string {
	var out []string
	for _, s := range t.symbols {
		if !s.Defined {
			out = append(out, s.Name)
		}
	}
	sort.Strings(out)
	return out
}

// All returns every defined symbol sorted by value then name, matching
// symbol_compare's ordering for the VICE label-file writer.
func (t *Table) All() []*Symbol {
	out := make([]*Symbol, 0, len(t.symbols))
	for _, s := range t.symbols {
		if s.Defined {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value < out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset clears all symbol definitions, keeping the table ready for a fresh
// assembly pass; used when re-running pass 1 under !watch-style iterative
// tooling is not part of the two-pass model but kept for test isolation.
func (t *Table) Reset() {
	t.symbols = make(map[string]*Symbol)
	t.zone = ""
}
