package workspace

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// SelectEnv is the environment a selector expression evaluates
// against, one manifest at a time.
type SelectEnv struct {
	// Name is the package name declared in the manifest.
	Name string `expr:"name"`
	// Path is the manifest file path.
	Path string `expr:"path"`
	// Dir is the crate directory containing the manifest.
	Dir string `expr:"dir"`
}

// Selector is a compiled boolean expression restricting which
// manifests a run processes, e.g. `name startsWith "api-"`.
type Selector struct {
	src  string
	prog *vm.Program
}

// CompileSelector compiles a selector expression.
func CompileSelector(src string) (*Selector, error) {
	prog, err := expr.Compile(src, expr.Env(SelectEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("could not compile selector %q: %w", src, err)
	}
	return &Selector{src: src, prog: prog}, nil
}

func (s *Selector) String() string { return s.src }

// Match evaluates the selector for one manifest.
func (s *Selector) Match(env SelectEnv) (bool, error) {
	out, err := expr.Run(s.prog, env)
	if err != nil {
		return false, fmt.Errorf("selector %q: %w", s.src, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
