package conformance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/funvibe/funshape/internal/analyzer"
	"github.com/funvibe/funshape/internal/ast"
	"github.com/funvibe/funshape/internal/prettyprinter"
	"github.com/funvibe/funshape/internal/token"
)

// Report is the outcome of running one suite.
type Report struct {
	// RunID tags the run; the store keys recorded rows by it.
	RunID string

	Suite     string
	File      string
	StartedAt time.Time
	Elapsed   time.Duration
	Results   []CaseResult
}

// Failed counts the cases that did not pass.
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

// OK reports whether every case passed.
func (r *Report) OK() bool { return r.Failed() == 0 }

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name   string
	Op     string
	Passed bool

	// Input is the checked operation rendered back to annotation syntax,
	// e.g. "(int, str)[-1]".
	Input string

	// Got is the rendered result type ("ok"/"fail" for assign).
	Got string

	// Bindings are the rendered pattern bindings (destructure) or
	// substitution entries (specialize).
	Bindings map[string]string

	// Codes are the diagnostic codes the case produced, in report order.
	Codes []string

	// Diags are the rendered diagnostics, for verbose output.
	Diags []string

	// Problems describes each expectation the case missed.
	Problems []string
}

// RunSuite executes every case of the suite, each against a fresh
// analyzer preloaded with the suite's declarations.
func RunSuite(s *Suite, file string) *Report {
	rep := &Report{
		RunID:     uuid.NewString(),
		Suite:     s.Name,
		File:      file,
		StartedAt: time.Now(),
	}
	for i := range s.Cases {
		rep.Results = append(rep.Results, runCase(s, &s.Cases[i], file))
	}
	rep.Elapsed = time.Since(rep.StartedAt)
	return rep
}

func runCase(s *Suite, c *Case, file string) CaseResult {
	res := CaseResult{Name: c.Name, Op: c.Op}

	an := analyzer.New()
	an.SetFile(file)
	for _, d := range s.Decls {
		an.DefineAlias(d.Name, d.Type.Expr())
	}

	switch c.Op {
	case OpBuild:
		expr := c.Type.Expr()
		res.Input = printNode(expr)
		res.Got = an.Build(expr).String()

	case OpIndex:
		node := &ast.IndexExpression{
			Token:    c.opToken(token.LBRACKET, "["),
			Receiver: c.Type.Expr(),
			Index:    c.Index,
		}
		res.Input = printNode(node)
		res.Got = an.CheckIndex(node).String()

	case OpAssign:
		node := &ast.AssignExpression{
			Token:  c.opToken(token.IDENT, "="),
			Source: c.Source.Expr(),
			Target: c.Target.Expr(),
		}
		res.Input = printNode(node)
		if an.CheckAssign(node) {
			res.Got = "ok"
		} else {
			res.Got = "fail"
		}

	case OpDestructure:
		node := &ast.DestructureExpression{
			Token:   c.opToken(token.LBRACKET, "["),
			Pattern: c.pattern(),
			Source:  c.Source.Expr(),
		}
		res.Input = printNode(node)
		bindings := an.CheckDestructure(node)
		res.Bindings = make(map[string]string, len(bindings))
		for _, b := range bindings {
			res.Bindings[b.Name] = b.Type.String()
		}

	case OpSpecialize:
		node := &ast.CallExpression{
			Token:     c.opToken(token.LPAREN, "("),
			Signature: c.Signature.Node(),
			Args:      c.Args.Expr(),
		}
		res.Input = printNode(node)
		result, subst := an.CheckCall(node)
		// A signature without a result annotation specializes to nothing.
		if result != nil {
			res.Got = result.String()
		}
		if len(subst) > 0 {
			res.Bindings = make(map[string]string, len(subst))
			for name, t := range subst {
				res.Bindings[name] = t.String()
			}
		}
	}

	for _, d := range an.Errors() {
		res.Codes = append(res.Codes, string(d.Code))
		res.Diags = append(res.Diags, d.Error())
	}

	res.Problems = c.evaluate(&res)
	res.Passed = len(res.Problems) == 0
	return res
}

// evaluate compares the case's expectations against the actual outcome
// and describes every miss.
func (c *Case) evaluate(res *CaseResult) []string {
	var problems []string

	if c.Want != "" && res.Got != c.Want {
		problems = append(problems, fmt.Sprintf("result: got %s, want %s", res.Got, c.Want))
	}

	if !equalStrings(res.Codes, c.WantCodes) {
		problems = append(problems, fmt.Sprintf("codes: got [%s], want [%s]",
			strings.Join(res.Codes, " "), strings.Join(c.WantCodes, " ")))
	}

	names := make([]string, 0, len(c.WantBindings))
	for name := range c.WantBindings {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		want := c.WantBindings[name]
		got, ok := res.Bindings[name]
		if !ok {
			problems = append(problems, fmt.Sprintf("binding %s: missing, want %s", name, want))
			continue
		}
		if got != want {
			problems = append(problems, fmt.Sprintf("binding %s: got %s, want %s", name, got, want))
		}
	}

	return problems
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func printNode(n ast.Node) string {
	p := prettyprinter.NewAnnotationPrinter()
	p.PrintNode(n)
	return p.String()
}
