package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the static type of an expression or declaration.
type Type int

const (
	TypeInteger Type = iota
	TypeString
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeInteger:
		return "Integer"
	case TypeString:
		return "String"
	case TypeBoolean:
		return "Boolean"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// SymbolEntry is recorded at the point a variable is declared.
type SymbolEntry struct {
	Name string
	Type Type
}

// SymbolTable is one lexical scope: the names declared directly in it plus a
// link to the enclosing scope. The link is a pointer, so a child sees later
// declarations in its parent and nothing is copied on scope entry.
type SymbolTable struct {
	symbols map[string]SymbolEntry
	parent  *SymbolTable
}

// NewSymbolTable returns an empty scope nested in parent; nil makes a root scope.
func NewSymbolTable(parent *SymbolTable) *SymbolTable {
	return &SymbolTable{
		symbols: make(map[string]SymbolEntry),
		parent:  parent,
	}
}

// Parent returns the enclosing scope, or nil for the root.
func (s *SymbolTable) Parent() *SymbolTable { return s.parent }

// Insert declares name in this scope. Redeclaring a name of this scope is an
// error; shadowing a name from an enclosing scope is not.
func (s *SymbolTable) Insert(name string, typ Type) error {
	if _, ok := s.symbols[name]; ok {
		return semanticErrorf(ErrRedeclared, "symbol '%s' is already defined", name)
	}
	s.symbols[name] = SymbolEntry{Name: name, Type: typ}
	return nil
}

// Lookup searches this scope, then each enclosing scope outward.
func (s *SymbolTable) Lookup(name string) (SymbolEntry, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if sym, ok := cur.symbols[name]; ok {
			return sym, true
		}
	}
	return SymbolEntry{}, false
}

// LookupLocal searches this scope only.
func (s *SymbolTable) LookupLocal(name string) (SymbolEntry, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Len returns the number of names declared directly in this scope.
func (s *SymbolTable) Len() int { return len(s.symbols) }

// String returns a deterministically ordered dump of this scope and its parents,
// innermost first.
func (s *SymbolTable) String() string {
	var sb strings.Builder
	depth := 0
	for cur := s; cur != nil; cur = cur.parent {
		depth++
	}
	for cur := s; cur != nil; cur = cur.parent {
		depth--
		if depth == 0 {
			sb.WriteString("Globals:")
		} else {
			fmt.Fprintf(&sb, "Scope %d:", depth)
		}
		if len(cur.symbols) == 0 {
			sb.WriteString(" (empty)\n")
			continue
		}
		sb.WriteString("\n")
		names := make([]string, 0, len(cur.symbols))
		for name := range cur.symbols {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&sb, "  %-20s  %s\n", name, cur.symbols[name].Type)
		}
	}
	return sb.String()
}
