package merger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntersect(t *testing.T) {
	tests := []struct {
		name     string
		running  HeaderSet
		incoming HeaderSet
		want     []string
	}{
		{
			name:     "first file seeds the set",
			running:  nil,
			incoming: NewHeaderSet("b", "a"),
			want:     []string{"a", "b"},
		},
		{
			name:     "intersection",
			running:  NewHeaderSet("a", "b", "c"),
			incoming: NewHeaderSet("b", "c", "d"),
			want:     []string{"b", "c"},
		},
		{
			name:     "empty running stays empty",
			running:  NewHeaderSet(),
			incoming: NewHeaderSet("a"),
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Intersect(tt.running, tt.incoming).Sorted())
		})
	}
}

func TestIntersect_IdempotentAndCommutative(t *testing.T) {
	a := NewHeaderSet("id", "city", "M1", "extra")
	b := NewHeaderSet("M1", "id", "city")
	c := NewHeaderSet("city", "M1", "id", "other")

	assert.Equal(t, a.Sorted(), Intersect(Intersect(nil, a), a).Sorted())

	abc := Intersect(Intersect(Intersect(nil, a), b), c)
	cba := Intersect(Intersect(Intersect(nil, c), b), a)
	bac := Intersect(Intersect(Intersect(nil, b), a), c)
	assert.Equal(t, []string{"M1", "city", "id"}, abc.Sorted())
	assert.Equal(t, abc.Sorted(), cba.Sorted())
	assert.Equal(t, abc.Sorted(), bac.Sorted())
}

func TestFileHeaders(t *testing.T) {
	hs, ok := FileHeaders([][]string{{"id", "city", "M1"}, {"M1", "id"}, {"id", "M1", "x"}})
	assert.True(t, ok)
	assert.Equal(t, []string{"M1", "id"}, hs.Sorted())

	_, ok = FileHeaders(nil)
	assert.False(t, ok)
}

func TestIntersector(t *testing.T) {
	var acc Intersector
	assert.Empty(t, acc.Result())

	sets := []HeaderSet{
		NewHeaderSet("a", "b", "c"),
		NewHeaderSet("b", "c"),
		NewHeaderSet("c", "b", "z"),
	}

	var wg sync.WaitGroup
	for _, s := range sets {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acc.Add(s)
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"b", "c"}, acc.Result().Sorted())
}

func TestIntersector_EmptyIntersectionIsNotReset(t *testing.T) {
	var acc Intersector
	acc.Add(NewHeaderSet("a"))
	acc.Add(NewHeaderSet("b"))
	acc.Add(NewHeaderSet("a", "b"))

	assert.Empty(t, acc.Result())
}
