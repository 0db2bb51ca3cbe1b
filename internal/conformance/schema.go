// Package conformance runs YAML fixture suites against the analyzer.
//
// A suite file declares named type aliases and a list of cases. Each case
// performs one operation — index, assign, destructure, specialize or
// build — and states what must come out of it: the rendered result type,
// the diagnostic codes, the bindings. The runner executes every case on a
// fresh analyzer and collects a report; reports can be persisted to a
// sqlite database so runs can be diffed over time.
//
// The conformance package handles:
//   - Parsing and validating suite YAML (schema.go)
//   - Lowering structured type nodes to descriptor nodes (lower.go)
//   - Executing suites and collecting reports (runner.go)
//   - Recording reports into the sqlite store (store.go)
package conformance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/funshape/internal/config"
)

// Operations a case can perform.
const (
	OpIndex       = "index"
	OpAssign      = "assign"
	OpDestructure = "destructure"
	OpSpecialize  = "specialize"
	OpBuild       = "build"
)

// Suite is the top-level document of one fixture file.
type Suite struct {
	// Name identifies the suite in reports and in the store.
	Name string `yaml:"name"`

	// Decls registers named type aliases before any case runs, e.g.
	// Pair → (int, str). Every case sees every declaration.
	Decls []Decl `yaml:"decls,omitempty"`

	// Cases lists the checks, executed in order, each against a fresh
	// analyzer.
	Cases []Case `yaml:"cases"`
}

// Decl registers one type alias.
type Decl struct {
	// Name is the alias, e.g. "Pair".
	Name string `yaml:"name"`

	// Type is the aliased annotation.
	Type *TypeNode `yaml:"type"`
}

// Case is one conformance check.
type Case struct {
	// Name identifies the case in reports.
	Name string `yaml:"name"`

	// Op selects the operation: index, assign, destructure, specialize
	// or build.
	Op string `yaml:"op"`

	// Type is the receiver annotation for index, or the annotation to
	// lower for build.
	Type *TypeNode `yaml:"type,omitempty"`

	// Index is the literal element index for index. May be negative:
	// -1 is the last element.
	Index int `yaml:"index,omitempty"`

	// Source is the value's annotation for assign and destructure.
	Source *TypeNode `yaml:"source,omitempty"`

	// Target is the declaration's annotation for assign.
	Target *TypeNode `yaml:"target,omitempty"`

	// Pattern lists the destructuring target names in order. A leading
	// '*' marks the collect-rest target: [a, "*rest", z].
	Pattern []PatternTarget `yaml:"pattern,omitempty"`

	// Signature is the generic signature for specialize.
	Signature *SignatureNode `yaml:"signature,omitempty"`

	// Args is the argument tuple for specialize. Entries may unpack the
	// caller's own variadic parameter.
	Args *TupleNode `yaml:"args,omitempty"`

	// Want is the expected rendering of the operation's result type,
	// e.g. "int" or "(int, *str, bool)". For assign it is "ok" or
	// "fail". Empty means the result is not checked.
	Want string `yaml:"want,omitempty"`

	// WantCodes lists the expected diagnostic codes in report order,
	// e.g. [T002, T003]. Omitted means the case must produce no
	// diagnostics.
	WantCodes []string `yaml:"wantCodes,omitempty"`

	// WantBindings maps pattern names (destructure) or type parameter
	// names (specialize) to their expected rendered types. Bindings not
	// named here are not checked.
	WantBindings map[string]string `yaml:"wantBindings,omitempty"`

	line   int
	column int
}

func (c *Case) UnmarshalYAML(value *yaml.Node) error {
	type plain Case
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*c = Case(p)
	c.line = value.Line
	c.column = value.Column
	return nil
}

// TypeNode is a structured type annotation. Exactly one field must be
// set. A bare scalar is shorthand for the name form: `type: int` equals
// `type: {name: int}`; the var and variadic forms always need the
// explicit key.
type TypeNode struct {
	// Name references a concrete type or a declared alias, e.g. int,
	// Pair, Unknown.
	Name string `yaml:"name,omitempty"`

	// Var references a scalar type parameter, e.g. T.
	Var string `yaml:"var,omitempty"`

	// Variadic references a variadic tuple parameter, e.g. Ts. Only
	// meaningful under an unpacked tuple entry.
	Variadic string `yaml:"variadic,omitempty"`

	// Seq is the element type of a sequence: `seq: int` → Seq[int].
	Seq *TypeNode `yaml:"seq,omitempty"`

	// Union lists the alternatives: `union: [int, str]` → int | str.
	Union []*TypeNode `yaml:"union,omitempty"`

	// Tuple is a tuple annotation.
	Tuple *TupleNode `yaml:"tuple,omitempty"`

	line   int
	column int
}

func (t *TypeNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var name string
		if err := value.Decode(&name); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("line %d: empty type name", value.Line)
		}
		t.Name = name
		t.line = value.Line
		t.column = value.Column
		return nil
	}

	type plain TypeNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*t = TypeNode(p)
	t.line = value.Line
	t.column = value.Column

	set := 0
	for _, used := range []bool{
		t.Name != "", t.Var != "", t.Variadic != "",
		t.Seq != nil, len(t.Union) > 0, t.Tuple != nil,
	} {
		if used {
			set++
		}
	}
	if set != 1 {
		return fmt.Errorf("line %d: type node needs exactly one of name, var, variadic, seq, union, tuple (got %d)", value.Line, set)
	}
	return nil
}

// TupleNode is a tuple annotation: entries in order, plus the ellipsis
// marker for the unknown-length form. A bare sequence is shorthand for
// the exact form: `tuple: [int, str]` → (int, str).
type TupleNode struct {
	// Entries lists the element annotations in order.
	Entries []EntryNode `yaml:"entries,omitempty"`

	// Ellipsis turns a single plain entry into the unknown-length form:
	// `{entries: [int], ellipsis: true}` → (int, ...).
	Ellipsis bool `yaml:"ellipsis,omitempty"`

	line   int
	column int
}

func (tn *TupleNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.SequenceNode {
		var entries []EntryNode
		if err := value.Decode(&entries); err != nil {
			return err
		}
		tn.Entries = entries
		tn.line = value.Line
		tn.column = value.Column
		return nil
	}

	type plain TupleNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*tn = TupleNode(p)
	tn.line = value.Line
	tn.column = value.Column
	return nil
}

// EntryNode is one tuple entry. A bare type is a plain element; the
// mapping form adds the unpack marker:
//
//	- int                              plain element
//	- {type: {variadic: Ts}, unpack: true}   unpacked variadic parameter
//	- {type: {tuple: ...}, unpack: true}     inlined inner tuple
type EntryNode struct {
	Type   *TypeNode `yaml:"type"`
	Unpack bool      `yaml:"unpack,omitempty"`
}

func (e *EntryNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.MappingNode {
		// Mappings carrying a type/unpack key are the explicit entry
		// form; any other mapping (seq:, union:, tuple:) is a type.
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch value.Content[i].Value {
			case "type", "unpack":
				type plain EntryNode
				var p plain
				if err := value.Decode(&p); err != nil {
					return err
				}
				*e = EntryNode(p)
				if e.Type == nil {
					return fmt.Errorf("line %d: tuple entry needs a type", value.Line)
				}
				return nil
			}
		}
	}

	var t TypeNode
	if err := value.Decode(&t); err != nil {
		return err
	}
	e.Type = &t
	return nil
}

// PatternTarget is one destructuring target. The YAML form is a plain
// string; a leading '*' marks the collect-rest target.
type PatternTarget struct {
	Name        string
	CollectRest bool
}

func (p *PatternTarget) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		return fmt.Errorf("line %d: empty pattern target", value.Line)
	}
	p.CollectRest = strings.HasPrefix(s, "*")
	p.Name = strings.TrimPrefix(s, "*")
	return nil
}

// SignatureNode describes a generic signature for the specialize op.
type SignatureNode struct {
	// TypeParams declares the type parameters. The YAML form is a string
	// per parameter; a leading '*' declares a variadic tuple parameter:
	// typeParams: [T, "*Ts"].
	TypeParams []ParamNode `yaml:"typeParams,omitempty"`

	// Params is the parameter tuple, e.g.
	// params: [{var: T}, {type: {variadic: Ts}, unpack: true}].
	Params *TupleNode `yaml:"params,omitempty"`

	// Result is the optional result annotation. Type parameters bound
	// during specialization substitute into it.
	Result *TypeNode `yaml:"result,omitempty"`

	line   int
	column int
}

func (s *SignatureNode) UnmarshalYAML(value *yaml.Node) error {
	type plain SignatureNode
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*s = SignatureNode(p)
	s.line = value.Line
	s.column = value.Column
	return nil
}

// ParamNode declares one type parameter of a signature.
type ParamNode struct {
	Name     string `yaml:"name"`
	Variadic bool   `yaml:"variadic,omitempty"`
}

func (p *ParamNode) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		if s == "" || s == "*" {
			return fmt.Errorf("line %d: empty type parameter name", value.Line)
		}
		p.Variadic = strings.HasPrefix(s, "*")
		p.Name = strings.TrimPrefix(s, "*")
		return nil
	}

	type plain ParamNode
	var pp plain
	if err := value.Decode(&pp); err != nil {
		return err
	}
	*p = ParamNode(pp)
	return nil
}

// LoadSuite reads and parses one suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite %s: %w", path, err)
	}
	return ParseSuite(data, path)
}

// ParseSuite parses suite content from bytes. The path argument is used
// only for error messages.
func ParseSuite(data []byte, path string) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := s.validate(path); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindSuites collects suite files from the given paths. A directory
// contributes every .yaml/.yml file directly inside it; a file path is
// taken as-is.
func FindSuites(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			for _, ext := range config.SuiteFileExtensions {
				if strings.HasSuffix(e.Name(), ext) {
					files = append(files, filepath.Join(p, e.Name()))
					break
				}
			}
		}
	}
	return files, nil
}

// validate checks the suite for semantic errors.
func (s *Suite) validate(path string) error {
	if s.Name == "" {
		return fmt.Errorf("%s: name is required", path)
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("%s: no cases defined", path)
	}

	seen := make(map[string]bool)
	for i, d := range s.Decls {
		if d.Name == "" {
			return fmt.Errorf("%s: decls[%d]: name is required", path, i)
		}
		if d.Type == nil {
			return fmt.Errorf("%s: decls[%d] (%s): type is required", path, i, d.Name)
		}
		if seen[d.Name] {
			return fmt.Errorf("%s: decls[%d] (%s): duplicate declaration", path, i, d.Name)
		}
		seen[d.Name] = true
	}

	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("%s: cases[%d]: name is required", path, i)
		}
		if err := c.validate(); err != nil {
			return fmt.Errorf("%s: cases[%d] (%s): %w", path, i, c.Name, err)
		}
	}
	return nil
}

// validate checks op-specific required fields. Shape-level problems
// (second open segment, doubled rest target) are deliberately not caught
// here: those are analyzer territory and cases exist to provoke them.
func (c *Case) validate() error {
	switch c.Op {
	case OpIndex:
		if c.Type == nil {
			return fmt.Errorf("index needs a type")
		}
	case OpAssign:
		if c.Source == nil || c.Target == nil {
			return fmt.Errorf("assign needs a source and a target")
		}
	case OpDestructure:
		if c.Source == nil {
			return fmt.Errorf("destructure needs a source")
		}
		if len(c.Pattern) == 0 {
			return fmt.Errorf("destructure needs a pattern")
		}
	case OpSpecialize:
		if c.Signature == nil {
			return fmt.Errorf("specialize needs a signature")
		}
		if c.Args == nil {
			return fmt.Errorf("specialize needs args")
		}
	case OpBuild:
		if c.Type == nil {
			return fmt.Errorf("build needs a type")
		}
	case "":
		return fmt.Errorf("op is required")
	default:
		return fmt.Errorf("unknown op %q", c.Op)
	}
	return nil
}
