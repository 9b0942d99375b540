package itinerary

import (
	"fmt"
	"slices"
)

// Splice removes the element at from and reinserts it at to, where to
// is interpreted against the list after removal. This matches the index
// semantics drag-and-drop front ends report: dragging an element past
// later items lands it exactly at the reported destination index.
//
// from == to is the "dropped in the same place" no-op and returns the
// input list unchanged. Callers must validate bounds; the Store does.
// The input is never mutated; a fresh slice is returned for every real
// move so previous snapshots stay intact.
func Splice(list []string, from, to int) []string {
	if from == to {
		return list
	}

	moved := list[from]
	out := make([]string, 0, len(list))
	out = append(out, list[:from]...)
	out = append(out, list[from+1:]...)

	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = moved
	return out
}

// Transfer removes id from src and inserts it into dst at destIndex,
// clamped to [0, len(dst)]. Both returned lists are fresh slices; the
// inputs are untouched. Fails when id is not present in src.
func Transfer(src, dst []string, id string, destIndex int) ([]string, []string, error) {
	at := slices.Index(src, id)
	if at < 0 {
		return nil, nil, fmt.Errorf("%w: %s not in source list", ErrUnknownActivity, id)
	}

	if destIndex < 0 {
		destIndex = 0
	}
	if destIndex > len(dst) {
		destIndex = len(dst)
	}

	newSrc := make([]string, 0, len(src)-1)
	newSrc = append(newSrc, src[:at]...)
	newSrc = append(newSrc, src[at+1:]...)

	newDst := make([]string, 0, len(dst)+1)
	newDst = append(newDst, dst[:destIndex]...)
	newDst = append(newDst, id)
	newDst = append(newDst, dst[destIndex:]...)

	return newSrc, newDst, nil
}
