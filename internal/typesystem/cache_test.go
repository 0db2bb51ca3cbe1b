package typesystem

import (
	"sync"
	"testing"
)

func TestCacheMatchesDirectResults(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	cache := NewCache()
	da := DefaultAssigner{}

	shape := NewExactShape(intT, strT)
	for _, index := range []int{0, 1, 2, -1, -3} {
		wantType, wantFailures := ElementAt(shape, index)
		gotType, gotFailures := cache.ElementAt(shape, index)
		if gotType.String() != wantType.String() {
			t.Errorf("cached [%d] = %s, want %s", index, gotType, wantType)
		}
		if len(gotFailures) != len(wantFailures) {
			t.Errorf("cached [%d] failures = %d, want %d", index, len(gotFailures), len(wantFailures))
		}
	}

	src := NewExactShape(strT, intT)
	dst := NewHomogeneousShape(strT)
	want := CheckAssignable(src, dst, da)
	got := cache.CheckAssignable(src, dst, da)
	if len(got) != len(want) {
		t.Errorf("cached failures = %d, want %d", len(got), len(want))
	}
}

func TestCacheInternsByStructure(t *testing.T) {
	intT := TCon{Name: "int"}
	cache := NewCache()

	// Two structurally identical shapes share one entry.
	cache.ElementAt(NewExactShape(intT, intT), 0)
	cache.ElementAt(NewExactShape(intT, intT), 0)
	cache.ElementAt(NewExactShape(intT, intT), 1)
	if got := cache.Len(); got != 2 {
		t.Errorf("interned keys = %d, want 2", got)
	}
}

func TestCacheRepeatedVerdictsAreStable(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	cache := NewCache()
	da := DefaultAssigner{}

	src := NewExactShape(strT, intT, intT)
	dst := NewHomogeneousShape(strT)
	first := cache.CheckAssignable(src, dst, da)
	second := cache.CheckAssignable(src, dst, da)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("verdicts = %d then %d failures, want 2 both times", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("failure %d differs across lookups", i)
		}
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	intT := TCon{Name: "int"}
	strT := TCon{Name: "str"}
	cache := NewCache()
	da := DefaultAssigner{}
	shape := NewOpenShape([]Type{intT}, strT, []Type{intT})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := -4; i < 4; i++ {
				cache.ElementAt(shape, i)
				cache.CheckAssignable(shape, NewHomogeneousShape(intT), da)
			}
		}()
	}
	wg.Wait()

	// 8 distinct indices plus one assignability pair.
	if got := cache.Len(); got != 9 {
		t.Errorf("interned keys = %d, want 9", got)
	}
}
