package evaluator

import (
	"fmt"
	"sort"

	"github.com/sandrolain/gotox/pkg/types"
)

// Environment is one lexical scope. Scopes form a chain through their parent
// pointer; the outermost scope has no parent.
type Environment struct {
	// parent is the enclosing scope
	parent *Environment

	// values stores the variables defined in this scope
	values map[string]types.Value

	// depth is the number of scopes between this one and the globals
	depth int
}

// NewEnvironment creates a scope enclosed by parent. A nil parent creates a
// global scope.
func NewEnvironment(parent *Environment) *Environment {
	env := &Environment{
		parent: parent,
		values: make(map[string]types.Value),
	}
	if parent != nil {
		env.depth = parent.depth + 1
	}
	return env
}

// Parent returns the enclosing scope.
func (env *Environment) Parent() *Environment {
	return env.parent
}

// Depth returns the nesting depth; the global scope is 0.
func (env *Environment) Depth() int {
	return env.depth
}

// Define binds name in this scope, replacing any previous binding here.
func (env *Environment) Define(name string, value types.Value) {
	env.values[name] = value
}

// Get retrieves a variable.
// It searches the current scope and then every enclosing scope.
func (env *Environment) Get(name string) (types.Value, bool) {
	for e := env; e != nil; e = e.parent {
		if value, ok := e.values[name]; ok {
			return value, true
		}
	}
	return types.Value{}, false
}

// Assign overwrites name in the nearest scope that defines it.
// It reports false, changing nothing, when no scope does.
func (env *Environment) Assign(name string, value types.Value) bool {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name]; ok {
			e.values[name] = value
			return true
		}
	}
	return false
}

// Names returns the names defined in this scope, sorted.
func (env *Environment) Names() []string {
	names := make([]string, 0, len(env.values))
	for name := range env.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns a string representation of the scope.
func (env *Environment) String() string {
	return fmt.Sprintf("Environment{depth=%d, values=%d}", env.depth, len(env.values))
}
