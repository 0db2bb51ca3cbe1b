package typesystem

import (
	"testing"
)

func TestShapeConstructors(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	boolT := TCon{Name: "bool"}

	tests := []struct {
		name      string
		shape     TupleShape
		want      string
		wantMin   int
		wantExact bool
	}{
		{
			name:      "Exact",
			shape:     NewExactShape(intT, strT),
			want:      "(int, str)",
			wantMin:   2,
			wantExact: true,
		},
		{
			name:      "Empty",
			shape:     NewExactShape(),
			want:      "()",
			wantMin:   0,
			wantExact: true,
		},
		{
			name:      "Homogeneous",
			shape:     NewHomogeneousShape(intT),
			want:      "(*int)",
			wantMin:   0,
			wantExact: false,
		},
		{
			name:      "Mixed",
			shape:     NewOpenShape([]Type{intT}, strT, []Type{boolT}),
			want:      "(int, *str, bool)",
			wantMin:   2,
			wantExact: false,
		},
		{
			name:      "Unresolved Reference Segment",
			shape:     NewOpenShape([]Type{intT}, TVariadic{Name: "Ts"}, nil),
			want:      "(int, *Ts)",
			wantMin:   1,
			wantExact: false,
		},
		{
			name:      "Nil Variadic Collapses To Exact",
			shape:     NewOpenShape([]Type{intT}, nil, []Type{boolT}),
			want:      "(int, bool)",
			wantMin:   2,
			wantExact: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
			if got := tt.shape.MinLen(); got != tt.wantMin {
				t.Errorf("MinLen() = %d, want %d", got, tt.wantMin)
			}
			if got := tt.shape.IsExact(); got != tt.wantExact {
				t.Errorf("IsExact() = %v, want %v", got, tt.wantExact)
			}
			n, exact := tt.shape.Arity()
			if n != tt.wantMin || exact != tt.wantExact {
				t.Errorf("Arity() = (%d, %v), want (%d, %v)", n, exact, tt.wantMin, tt.wantExact)
			}
		})
	}
}

func TestShapeMemberTypes(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	boolT := TCon{Name: "bool"}

	shape := NewOpenShape([]Type{intT}, strT, []Type{boolT})
	members := shape.MemberTypes()
	if len(members) != 3 {
		t.Fatalf("members = %d, want 3", len(members))
	}
	wantOrder := []string{"int", "str", "bool"}
	for i, w := range wantOrder {
		if members[i].String() != w {
			t.Errorf("member %d = %s, want %s", i, members[i], w)
		}
	}

	if got := len(NewExactShape().MemberTypes()); got != 0 {
		t.Errorf("empty shape members = %d, want 0", got)
	}
}

func TestShapeSplice(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	boolT := TCon{Name: "bool"}
	floatT := TCon{Name: "float"}

	tests := []struct {
		name  string
		shape TupleShape
		subst Subst
		want  string
	}{
		{
			name:  "Exact Capture Splices Flat",
			shape: NewOpenShape([]Type{boolT}, TVariadic{Name: "Ts"}, []Type{floatT}),
			subst: Subst{"Ts": NewExactShape(intT, strT)},
			want:  "(bool, int, str, float)",
		},
		{
			name:  "Empty Capture Vanishes",
			shape: NewOpenShape([]Type{boolT}, TVariadic{Name: "Ts"}, []Type{floatT}),
			subst: Subst{"Ts": NewExactShape()},
			want:  "(bool, float)",
		},
		{
			name:  "Open Capture Keeps Its Segment",
			shape: NewOpenShape([]Type{boolT}, TVariadic{Name: "Ts"}, []Type{floatT}),
			subst: Subst{"Ts": NewOpenShape([]Type{intT}, strT, nil)},
			want:  "(bool, int, *str, float)",
		},
		{
			name:  "Unbound Reference Stays",
			shape: NewOpenShape([]Type{boolT}, TVariadic{Name: "Ts"}, nil),
			subst: Subst{},
			want:  "(bool, *Ts)",
		},
		{
			name:  "Reference Renames",
			shape: NewOpenShape(nil, TVariadic{Name: "Ts"}, nil),
			subst: Subst{"Ts": TVariadic{Name: "Us"}},
			want:  "(*Us)",
		},
		{
			name:  "Scalars Substitute In Place",
			shape: NewOpenShape([]Type{TVar{Name: "T"}}, strT, []Type{TVar{Name: "T"}}),
			subst: Subst{"T": intT},
			want:  "(int, *str, int)",
		},
		{
			name: "Nested Shape Elements Substitute",
			shape: NewExactShape(
				NewOpenShape(nil, TVariadic{Name: "Ts"}, nil),
				TVar{Name: "T"},
			),
			subst: Subst{"Ts": NewExactShape(intT), "T": strT},
			want:  "((int), str)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.shape.Apply(tt.subst).String(); got != tt.want {
				t.Errorf("Apply() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLeadingAndTrailingMembers(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	boolT := TCon{Name: "bool"}

	// (int, *str, bool): one pinned leading position, one pinned trailing
	// position, everything else depends on how far the open segment
	// stretches.
	shape := NewOpenShape([]Type{intT}, strT, []Type{boolT})

	tests := []struct {
		name     string
		fn       func() Type
		want     string
		minTotal int
	}{
		{
			name: "Prefix Position Is Pinned",
			fn:   func() Type { return shape.leadingMember(0, 2) },
			want: "int",
		},
		{
			name: "Past Prefix Can Alias Suffix",
			fn:   func() Type { return shape.leadingMember(1, 2) },
			want: "bool | str",
		},
		{
			name: "Longer Guarantee Unpins Suffix",
			fn:   func() Type { return shape.leadingMember(1, 3) },
			want: "str",
		},
		{
			name: "Suffix Position Is Pinned",
			fn:   func() Type { return shape.trailingMember(0, 2) },
			want: "bool",
		},
		{
			name: "Past Suffix Can Alias Prefix",
			fn:   func() Type { return shape.trailingMember(1, 2) },
			want: "int | str",
		},
		{
			name: "Longer Guarantee Unpins Prefix",
			fn:   func() Type { return shape.trailingMember(1, 3) },
			want: "str",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn().String(); got != tt.want {
				t.Errorf("member = %s, want %s", got, tt.want)
			}
		})
	}
}
