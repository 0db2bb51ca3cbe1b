package targets

import (
	"strings"
	"testing"

	"github.com/funvibe/funshape/internal/conformance"
	"github.com/funvibe/funshape/tests/fuzz/generators"
)

// FuzzParseSuite throws raw bytes at the suite parser. Arbitrary input
// may be rejected, but never with a panic; input that parses must also
// survive the runner.
func FuzzParseSuite(f *testing.F) {
	f.Add([]byte("name: x\ncases:\n  - name: c\n    op: build\n    type: int\n"))
	f.Add([]byte("name: x\ncases:\n  - name: c\n    op: index\n    type: { tuple: [int, str] }\n    index: -1\n"))
	f.Add([]byte("name: x\ndecls:\n  - name: P\n    type: { tuple: [int] }\ncases:\n  - name: c\n    op: assign\n    source: P\n    target: P\n"))
	f.Add([]byte("name: broken\ncases: [\n"))
	f.Add([]byte{0xff, 0xfe, 0x00, 0x01})

	f.Fuzz(func(t *testing.T, data []byte) {
		suite, err := conformance.ParseSuite(data, "fuzz.yaml")
		if err != nil {
			return
		}

		rep := conformance.RunSuite(suite, "fuzz.yaml")
		if rep == nil {
			t.Fatal("RunSuite returned nil report")
		}
		if len(rep.Results) != len(suite.Cases) {
			t.Fatalf("%d cases produced %d results", len(suite.Cases), len(rep.Results))
		}
		for _, res := range rep.Results {
			if !res.Passed && len(res.Problems) == 0 {
				t.Fatalf("case %q failed without a problem description", res.Name)
			}
		}
	})
}

// FuzzGeneratedSuites runs schema-valid generated documents end to end.
// Parsing must always succeed here; the runner must produce one result
// per case whatever the cases check.
func FuzzGeneratedSuites(f *testing.F) {
	f.Add([]byte{0})
	f.Add([]byte{9, 8, 7, 6, 5, 4, 3, 2, 1})
	f.Add([]byte{42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42, 42})

	f.Fuzz(func(t *testing.T, data []byte) {
		gen := generators.NewFromData(data)
		doc := gen.SuiteDoc()

		suite, err := conformance.ParseSuite([]byte(doc), "generated.yaml")
		if err != nil {
			t.Fatalf("generated doc does not parse: %v\n%s", err, doc)
		}

		rep := conformance.RunSuite(suite, "generated.yaml")
		if len(rep.Results) != len(suite.Cases) {
			t.Fatalf("%d cases produced %d results", len(suite.Cases), len(rep.Results))
		}

		// Diagnostics must point into the suite file.
		for _, res := range rep.Results {
			for _, d := range res.Diags {
				if !strings.HasPrefix(d, "generated.yaml:") {
					t.Fatalf("diagnostic lost its file position: %s", d)
				}
			}
		}
	})
}
