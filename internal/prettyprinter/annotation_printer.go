package prettyprinter

import (
	"bytes"
	"strconv"

	"github.com/funvibe/funshape/internal/ast"
)

// --- Annotation Printer (output looks like annotation source) ---

// AnnotationPrinter renders descriptor nodes back to annotation syntax:
// "(int, *Ts)", "[a, *rest] = (int, str)", "[T](T, str) -> T". Verbose
// conformance output uses it to show what a case actually checked.
type AnnotationPrinter struct {
	buf bytes.Buffer
}

func NewAnnotationPrinter() *AnnotationPrinter {
	return &AnnotationPrinter{}
}

func (p *AnnotationPrinter) String() string {
	return p.buf.String()
}

func (p *AnnotationPrinter) write(s string) {
	p.buf.WriteString(s)
}

// PrintNode renders any descriptor node.
func (p *AnnotationPrinter) PrintNode(n ast.Node) {
	switch node := n.(type) {
	case nil:
		p.write("<???>")
	case *ast.IndexExpression:
		p.PrintType(node.Receiver)
		p.write("[")
		p.write(strconv.Itoa(node.Index))
		p.write("]")
	case *ast.AssignExpression:
		p.PrintType(node.Source)
		p.write(" -> ")
		p.PrintType(node.Target)
	case *ast.DestructureExpression:
		p.printPattern(node.Pattern)
		p.write(" = ")
		p.PrintType(node.Source)
	case *ast.CallExpression:
		p.write("(")
		p.printSignature(node.Signature)
		p.write(")")
		p.printTuple(node.Args)
	case ast.TypeExpr:
		p.PrintType(node)
	default:
		p.write("<???>")
	}
}

// PrintType renders a type annotation.
func (p *AnnotationPrinter) PrintType(t ast.TypeExpr) {
	if t == nil {
		p.write("<???>")
		return
	}
	switch node := t.(type) {
	case *ast.NamedType:
		p.write(node.Name)
	case *ast.VarType:
		p.write(node.Name)
	case *ast.VariadicRefType:
		p.write("*")
		p.write(node.Name)
	case *ast.SeqType:
		p.write("Seq[")
		p.PrintType(node.Elem)
		p.write("]")
	case *ast.UnionType:
		for i, alt := range node.Alts {
			if i > 0 {
				p.write(" | ")
			}
			p.PrintType(alt)
		}
	case *ast.TupleType:
		p.printTuple(node)
	default:
		p.write("<???>")
	}
}

func (p *AnnotationPrinter) printTuple(tt *ast.TupleType) {
	if tt == nil {
		p.write("()")
		return
	}
	p.write("(")
	for i, entry := range tt.Entries {
		if i > 0 {
			p.write(", ")
		}
		if entry.Unpack {
			// A variadic reference renders its own star.
			if _, ok := entry.Type.(*ast.VariadicRefType); !ok {
				p.write("*")
			}
		}
		p.PrintType(entry.Type)
	}
	if tt.Ellipsis {
		if len(tt.Entries) > 0 {
			p.write(", ")
		}
		p.write("...")
	}
	p.write(")")
}

func (p *AnnotationPrinter) printPattern(pattern *ast.AssignPattern) {
	if pattern == nil {
		p.write("<???>")
		return
	}
	p.write("[")
	for i, tgt := range pattern.Targets {
		if i > 0 {
			p.write(", ")
		}
		if tgt.CollectRest {
			p.write("*")
		}
		p.write(tgt.Name)
	}
	p.write("]")
}

func (p *AnnotationPrinter) printSignature(sig *ast.GenericSignature) {
	if sig == nil {
		p.write("<???>")
		return
	}
	if len(sig.TypeParams) > 0 {
		p.write("[")
		for i, tp := range sig.TypeParams {
			if i > 0 {
				p.write(", ")
			}
			if tp.Variadic {
				p.write("*")
			}
			p.write(tp.Name)
		}
		p.write("]")
	}
	p.printTuple(sig.Params)
	if sig.Result != nil {
		p.write(" -> ")
		p.PrintType(sig.Result)
	}
}
