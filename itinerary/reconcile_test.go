package itinerary

import (
	"errors"
	"reflect"
	"sort"
	"testing"
)

func samePermutation(t *testing.T, before, after []string) {
	t.Helper()
	if len(before) != len(after) {
		t.Fatalf("length changed: %d -> %d", len(before), len(after))
	}
	a := append([]string(nil), before...)
	b := append([]string(nil), after...)
	sort.Strings(a)
	sort.Strings(b)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("not a permutation: %v vs %v", before, after)
	}
	seen := map[string]bool{}
	for _, id := range after {
		if seen[id] {
			t.Fatalf("duplicate id %s in %v", id, after)
		}
		seen[id] = true
	}
}

func TestSpliceSameIndexIsIdentity(t *testing.T) {
	lists := [][]string{
		{"a"},
		{"a", "b"},
		{"a", "b", "c", "d"},
	}
	for _, list := range lists {
		for i := range list {
			got := Splice(list, i, i)
			if !reflect.DeepEqual(got, list) {
				t.Errorf("Splice(%v, %d, %d) = %v, want unchanged", list, i, i, got)
			}
		}
	}
}

func TestSpliceForward(t *testing.T) {
	got := Splice([]string{"D1", "D2", "D3"}, 0, 2)
	want := []string{"D2", "D3", "D1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSpliceBackward(t *testing.T) {
	got := Splice([]string{"A1", "A2", "A3"}, 2, 0)
	want := []string{"A3", "A1", "A2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestSpliceFirstToLastAndBack(t *testing.T) {
	list := []string{"a", "b", "c", "d"}

	got := Splice(list, 0, 3)
	if want := []string{"b", "c", "d", "a"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("first->last: got %v, want %v", got, want)
	}

	got = Splice(list, 3, 0)
	if want := []string{"d", "a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("last->first: got %v, want %v", got, want)
	}
}

func TestSplicePreservesPermutation(t *testing.T) {
	list := []string{"a", "b", "c", "d", "e"}
	for from := range list {
		for to := range list {
			samePermutation(t, list, Splice(list, from, to))
		}
	}
}

func TestSpliceDoesNotMutateInput(t *testing.T) {
	list := []string{"a", "b", "c"}
	Splice(list, 0, 2)
	if !reflect.DeepEqual(list, []string{"a", "b", "c"}) {
		t.Fatalf("input mutated: %v", list)
	}
}

func TestTransferAcrossLists(t *testing.T) {
	src := []string{"A1", "A2"}
	dst := []string{"A3"}

	newSrc, newDst, err := Transfer(src, dst, "A1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"A2"}; !reflect.DeepEqual(newSrc, want) {
		t.Errorf("source = %v, want %v", newSrc, want)
	}
	if want := []string{"A1", "A3"}; !reflect.DeepEqual(newDst, want) {
		t.Errorf("destination = %v, want %v", newDst, want)
	}

	// conservation
	if len(newSrc)+len(newDst) != len(src)+len(dst) {
		t.Errorf("element count changed: %d+%d -> %d+%d", len(src), len(dst), len(newSrc), len(newDst))
	}
	// inputs untouched
	if !reflect.DeepEqual(src, []string{"A1", "A2"}) || !reflect.DeepEqual(dst, []string{"A3"}) {
		t.Errorf("inputs mutated: %v %v", src, dst)
	}
}

func TestTransferIntoEmptyList(t *testing.T) {
	newSrc, newDst, err := Transfer([]string{"A1"}, []string{}, "A1", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(newSrc) != 0 {
		t.Errorf("source not empty: %v", newSrc)
	}
	if want := []string{"A1"}; !reflect.DeepEqual(newDst, want) {
		t.Errorf("destination = %v, want %v", newDst, want)
	}
}

func TestTransferClampsDestIndex(t *testing.T) {
	_, newDst, err := Transfer([]string{"x"}, []string{"a", "b"}, "x", 99)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "x"}; !reflect.DeepEqual(newDst, want) {
		t.Errorf("high index: got %v, want %v", newDst, want)
	}

	_, newDst, err = Transfer([]string{"x"}, []string{"a", "b"}, "x", -3)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"x", "a", "b"}; !reflect.DeepEqual(newDst, want) {
		t.Errorf("negative index: got %v, want %v", newDst, want)
	}
}

func TestTransferMissingID(t *testing.T) {
	_, _, err := Transfer([]string{"A1"}, []string{}, "A2", 0)
	if !errors.Is(err, ErrUnknownActivity) {
		t.Fatalf("err = %v, want ErrUnknownActivity", err)
	}
}
