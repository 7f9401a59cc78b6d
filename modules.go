// modules.go — the Clarice module registry.
//
// A module is an object exposing named members: callables or nested module
// objects. `using X from Y` resolves registry path Y, reads member X, and
// binds it durably in the current scope. Module objects are loaded once at
// process start, shared by reference across every scope that imports them,
// and live for the lifetime of the process.
//
// The registry is immutable after DefaultRegistry returns: Register is only
// called while the built-in tree is assembled, so the single evaluation
// thread can read it without synchronization.
package clarice

import "sort"

// Module is the payload carried by a VTModule value: an ordered mapping from
// member name to callable or nested module.
type Module struct {
	Name    string
	members map[string]Value
	keys    []string
}

// NewModule creates an empty module object.
func NewModule(name string) *Module {
	return &Module{Name: name, members: make(map[string]Value)}
}

// Define adds or replaces a member, preserving first-insertion order.
func (m *Module) Define(name string, v Value) {
	if _, exists := m.members[name]; !exists {
		m.keys = append(m.keys, name)
	}
	m.members[name] = v
}

// DefineFun is shorthand for exposing a builtin callable as a member.
func (m *Module) DefineFun(b *Builtin) {
	m.Define(b.Name, FunVal(b))
}

// Member returns the named member and whether it exists.
func (m *Module) Member(name string) (Value, bool) {
	v, ok := m.members[name]
	return v, ok
}

// Members returns member names in insertion order.
func (m *Module) Members() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Val wraps the module into a Value.
func (m *Module) Val() Value { return Value{Tag: VTModule, Data: m} }

// Registry resolves `using ... from PATH` declarations to module objects.
type Registry struct {
	modules map[string]*Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Register installs a module under a path. Call only during initialization;
// the registry is read-only once evaluation starts.
func (r *Registry) Register(path string, m *Module) {
	r.modules[path] = m
}

// Resolve returns the module registered at path.
func (r *Registry) Resolve(path string) (*Module, bool) {
	m, ok := r.modules[path]
	return m, ok
}

// Paths returns every registered path, sorted.
func (r *Registry) Paths() []string {
	out := make([]string, 0, len(r.modules))
	for p := range r.modules {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry assembles the built-in module tree:
//
//	Clarice/Core  → Text, Math, List
//	Clarice/Extra → Markdown
//	Clarice/IO    → File, Clock
func DefaultRegistry() *Registry {
	r := NewRegistry()

	core := NewModule("Clarice/Core")
	core.Define("Text", textModule().Val())
	core.Define("Math", mathModule().Val())
	core.Define("List", listModule().Val())
	r.Register("Clarice/Core", core)

	extra := NewModule("Clarice/Extra")
	extra.Define("Markdown", markdownModule().Val())
	r.Register("Clarice/Extra", extra)

	io := NewModule("Clarice/IO")
	io.Define("File", fileModule().Val())
	io.Define("Clock", clockModule().Val())
	r.Register("Clarice/IO", io)

	return r
}
