package faroeste

import "fmt"

// SymbolKind tells what declared a name.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolParameter
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolParameter:
		return "parameter"
	default:
		return "variable"
	}
}

// SymbolInfo is one binding. For functions Type is the return type.
type SymbolInfo struct {
	Name string
	Type Type
	Kind SymbolKind
	Line int
}

// Scope is one level of bindings. Symbols keeps declaration order so dumps
// are stable; lookups go through the index.
type Scope struct {
	Depth   int
	Symbols []*SymbolInfo
	index   map[string]*SymbolInfo
}

func newScope(depth int) *Scope {
	return &Scope{Depth: depth, index: make(map[string]*SymbolInfo)}
}

// Lookup finds name in this scope only.
func (s *Scope) Lookup(name string) *SymbolInfo {
	return s.index[name]
}

// SymbolTable is a stack of scopes. The global scope at depth 1 is created
// with the table and is never popped.
type SymbolTable struct {
	scopes []*Scope
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{scopes: []*Scope{newScope(1)}}
}

// PushScope opens a new innermost scope.
func (st *SymbolTable) PushScope() {
	st.scopes = append(st.scopes, newScope(len(st.scopes)+1))
}

// PopScope closes the innermost scope and returns it. Popping the global
// scope is a programming error.
func (st *SymbolTable) PopScope() *Scope {
	if len(st.scopes) == 1 {
		panic("symbol table: cannot pop the global scope")
	}
	top := st.scopes[len(st.scopes)-1]
	st.scopes = st.scopes[:len(st.scopes)-1]
	return top
}

// Depth is the number of open scopes, at least 1.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Current returns the innermost scope.
func (st *SymbolTable) Current() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// Global returns the outermost scope.
func (st *SymbolTable) Global() *Scope {
	return st.scopes[0]
}

// Declare binds name in the innermost scope. A name already bound in that
// same scope is an ErrRedeclared error and the first binding is kept.
func (st *SymbolTable) Declare(name Token, typ Type, kind SymbolKind) (*SymbolInfo, error) {
	cur := st.Current()
	if prev := cur.Lookup(name.Lexeme); prev != nil {
		return nil, &SemanticError{
			Kind:    ErrRedeclared,
			Token:   name,
			Message: fmt.Sprintf("%s '%s' already declared", kind, name.Lexeme),
		}
	}

	sym := &SymbolInfo{Name: name.Lexeme, Type: typ, Kind: kind, Line: name.Line}
	cur.index[sym.Name] = sym
	cur.Symbols = append(cur.Symbols, sym)
	return sym, nil
}

// LookupVariable walks from the innermost scope outwards and returns the
// first binding of name, or nil.
func (st *SymbolTable) LookupVariable(name string) *SymbolInfo {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if sym := st.scopes[i].Lookup(name); sym != nil {
			return sym
		}
	}
	return nil
}

// Scopes returns the open scopes innermost-first.
func (st *SymbolTable) Scopes() []*Scope {
	out := make([]*Scope, 0, len(st.scopes))
	for i := len(st.scopes) - 1; i >= 0; i-- {
		out = append(out, st.scopes[i])
	}
	return out
}

// GetAllVariables returns every binding of every open scope, outermost
// scope first.
func (st *SymbolTable) GetAllVariables() []*SymbolInfo {
	var all []*SymbolInfo
	for _, s := range st.scopes {
		all = append(all, s.Symbols...)
	}
	return all
}
