package ordered_test

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/nnc/base/ordered"
)

type entry struct {
	k string
	v int
}

func collect(m *ordered.Map[string, int]) []entry {
	var got []entry
	for k, v := range m.All() {
		got = append(got, entry{k: k, v: v})
	}
	return got
}

func TestMap(t *testing.T) {
	tests := []struct {
		entries []entry
		want    []entry
	}{
		{
			entries: []entry{{k: "a", v: 1}, {k: "b", v: 2}, {k: "c", v: 3}},
			want:    []entry{{k: "a", v: 1}, {k: "b", v: 2}, {k: "c", v: 3}},
		},
		{
			entries: []entry{{k: "a", v: 1}, {k: "b", v: 2}, {k: "a", v: 3}},
			want:    []entry{{k: "a", v: 3}, {k: "b", v: 2}},
		},
		{
			entries: []entry{{k: "a", v: 1}, {k: "a", v: 2}, {k: "a", v: 4}},
			want:    []entry{{k: "a", v: 4}},
		},
	}
	for ti, test := range tests {
		m := ordered.NewMap[string, int]()
		for _, entry := range test.entries {
			m.Store(entry.k, entry.v)
		}
		m = m.Clone()
		if m.Len() != len(test.want) {
			t.Errorf("test %d: map has %d entries but want %d", ti, m.Len(), len(test.want))
			continue
		}
		got := collect(m)
		if !cmp.Equal(got, test.want, cmp.AllowUnexported(entry{})) {
			t.Errorf("test %d: got %v but want %v", ti, got, test.want)
		}
		keys := slices.Collect(m.Keys())
		for i, k := range keys {
			if k != test.want[i].k {
				t.Errorf("test %d key %d: got %s but want %s", ti, i, k, test.want[i].k)
			}
		}
	}
}

func TestRollback(t *testing.T) {
	m := ordered.NewMap[string, int]()
	m.Store("a", 1)
	mark := m.Mark()
	m.Store("b", 2)
	m.Store("c", 3)
	m.Rollback(mark)
	if m.Has("b") || m.Has("c") {
		t.Errorf("keys stored after the mark are still present: %v", collect(m))
	}
	want := []entry{{k: "a", v: 1}}
	if got := collect(m); !cmp.Equal(got, want, cmp.AllowUnexported(entry{})) {
		t.Errorf("got %v but want %v", got, want)
	}
	m.Store("d", 4)
	if got := slices.Collect(m.Values()); !cmp.Equal(got, []int{1, 4}) {
		t.Errorf("got values %v but want [1 4]", got)
	}
}
