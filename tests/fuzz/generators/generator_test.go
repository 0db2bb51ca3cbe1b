package generators

import (
	"testing"

	"github.com/funvibe/funshape/internal/conformance"
	"github.com/funvibe/funshape/internal/typesystem"
)

func TestGenerator_Determinism(t *testing.T) {
	gen1 := New(12345)
	gen2 := New(12345)

	for i := 0; i < 50; i++ {
		t1, t2 := gen1.Type(), gen2.Type()
		if t1.String() != t2.String() {
			t.Fatalf("iteration %d: %s vs %s", i, t1, t2)
		}
	}
}

func TestGenerator_TypesRender(t *testing.T) {
	gen := New(99)
	for i := 0; i < 200; i++ {
		typ := gen.Type()
		if typ == nil {
			t.Fatal("generated nil type")
		}
		if typ.String() == "" {
			t.Fatalf("type %#v renders empty", typ)
		}
	}
}

func TestGenerator_OpenShapesStayOpen(t *testing.T) {
	gen := New(7)
	for i := 0; i < 100; i++ {
		shape := gen.OpenShape()
		if shape.IsExact() {
			t.Fatalf("OpenShape produced exact shape %s", shape)
		}
	}
}

func TestGenerator_PatternHasOneRest(t *testing.T) {
	gen := New(3)
	for i := 0; i < 100; i++ {
		targets := gen.Pattern(gen.Intn(5)+1, true)
		rests := 0
		for _, tgt := range targets {
			if tgt.CollectRest {
				rests++
			}
		}
		if rests != 1 {
			t.Fatalf("pattern %v has %d rest targets", targets, rests)
		}
	}
}

func TestGenerator_SignatureMentionsAllParams(t *testing.T) {
	gen := New(11)
	for i := 0; i < 100; i++ {
		sig := gen.Signature()
		members := sig.Params.MemberTypes()
		for _, p := range sig.TypeParams {
			found := false
			for _, m := range members {
				switch v := m.(type) {
				case typesystem.TVar:
					found = found || v.Name == p.Name
				case typesystem.TVariadic:
					found = found || v.Name == p.Name
				}
			}
			if !found {
				t.Fatalf("signature %s never mentions parameter %s", sig.Params, p.Name)
			}
		}
	}
}

// Every generated suite document must decode and validate; the runner
// fuzz target relies on that.
func TestGenerator_SuiteDocsParse(t *testing.T) {
	for seed := int64(0); seed < 30; seed++ {
		gen := New(seed)
		doc := gen.SuiteDoc()
		if _, err := conformance.ParseSuite([]byte(doc), "generated.yaml"); err != nil {
			t.Fatalf("seed %d: generated doc does not parse: %v\n%s", seed, err, doc)
		}
	}
}
