package ir

// SymbolTable resolves names to Variables and keeps the Variables in
// declaration order. The name map is only ever used for lookup; iteration
// always goes through the ordered slice.
type SymbolTable struct {
	vars  []*Variable
	names map[string]*Variable
	keys  map[string]*Variable
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		vars:  make([]*Variable, 0, 16),
		names: make(map[string]*Variable, 16),
		keys:  make(map[string]*Variable, 8),
	}
}

// Lookup finds a variable by any of its names.
func (t *SymbolTable) Lookup(name string) (*Variable, bool) {
	v, ok := t.names[name]
	return v, ok
}

// LookupKey finds an implicit or bound variable by canonical key.
func (t *SymbolTable) LookupKey(key string) (*Variable, bool) {
	v, ok := t.keys[key]
	return v, ok
}

// Add appends v to the declaration order and registers its names and key.
// It returns false, without modifying the table, if any name is taken.
func (t *SymbolTable) Add(v *Variable) bool {
	for _, name := range v.Names {
		if _, exists := t.names[name]; exists {
			return false
		}
	}
	for _, name := range v.Names {
		t.names[name] = v
	}
	if v.Key != "" {
		t.keys[v.Key] = v
	}
	t.vars = append(t.vars, v)
	return true
}

// Alias binds an additional name to an existing variable.
// It returns false if the name is already taken.
func (t *SymbolTable) Alias(name string, v *Variable) bool {
	if _, exists := t.names[name]; exists {
		return false
	}
	t.names[name] = v
	v.Names = append(v.Names, name)
	return true
}

// Variables returns all variables in declaration order.
func (t *SymbolTable) Variables() []*Variable {
	return t.vars
}

// Count returns the number of variables.
func (t *SymbolTable) Count() int {
	return len(t.vars)
}
