package generators

import (
	"fmt"
	"strings"
)

// SuiteDoc generates a random but schema-valid conformance suite
// document. The fuzz targets feed it to the YAML parser and runner, so
// every generated document must decode; the cases themselves are free to
// fail their checks.
func (g *Generator) SuiteDoc() string {
	var sb strings.Builder
	sb.WriteString("name: generated suite\n")

	declCount := g.src.Intn(3)
	if declCount > 0 {
		sb.WriteString("decls:\n")
		for i := 0; i < declCount; i++ {
			fmt.Fprintf(&sb, "  - name: Alias%d\n", i)
			fmt.Fprintf(&sb, "    type: { tuple: [%s] }\n", g.scalarList(g.src.Intn(3)+1))
		}
	}

	sb.WriteString("cases:\n")
	caseCount := g.src.Intn(4) + 1
	for i := 0; i < caseCount; i++ {
		switch g.src.Intn(4) {
		case 0:
			fmt.Fprintf(&sb, "  - name: case %d\n    op: index\n", i)
			fmt.Fprintf(&sb, "    type: %s\n", g.typeDoc(declCount))
			fmt.Fprintf(&sb, "    index: %d\n", g.src.Intn(9)-4)
		case 1:
			fmt.Fprintf(&sb, "  - name: case %d\n    op: assign\n", i)
			fmt.Fprintf(&sb, "    source: %s\n", g.typeDoc(declCount))
			fmt.Fprintf(&sb, "    target: %s\n", g.typeDoc(declCount))
		case 2:
			fmt.Fprintf(&sb, "  - name: case %d\n    op: destructure\n", i)
			fmt.Fprintf(&sb, "    source: %s\n", g.typeDoc(declCount))
			targets := g.src.Intn(3) + 1
			names := make([]string, targets)
			for j := range names {
				names[j] = targetNames[j%len(targetNames)]
			}
			if g.src.Intn(2) == 0 {
				names[g.src.Intn(targets)] = `"*rest"`
			}
			fmt.Fprintf(&sb, "    pattern: [%s]\n", strings.Join(names, ", "))
		default:
			fmt.Fprintf(&sb, "  - name: case %d\n    op: build\n", i)
			fmt.Fprintf(&sb, "    type: %s\n", g.typeDoc(declCount))
		}
	}
	return sb.String()
}

// typeDoc renders a random type node in the schema's flow syntax.
func (g *Generator) typeDoc(declCount int) string {
	switch g.src.Intn(5) {
	case 0:
		if declCount > 0 {
			return fmt.Sprintf("Alias%d", g.src.Intn(declCount))
		}
		return scalarNames[g.src.Intn(len(scalarNames))]
	case 1:
		return fmt.Sprintf("{ seq: %s }", scalarNames[g.src.Intn(len(scalarNames))])
	case 2:
		return fmt.Sprintf("{ tuple: [%s] }", g.scalarList(g.src.Intn(4)))
	case 3:
		return fmt.Sprintf("{ tuple: { entries: [%s], ellipsis: true } }",
			scalarNames[g.src.Intn(len(scalarNames))])
	default:
		return scalarNames[g.src.Intn(len(scalarNames))]
	}
}

func (g *Generator) scalarList(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = scalarNames[g.src.Intn(len(scalarNames))]
	}
	return strings.Join(parts, ", ")
}
