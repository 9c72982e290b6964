package merger

import (
	"sort"
	"sync"
)

// HeaderSet множество имен колонок
type HeaderSet map[string]struct{}

// NewHeaderSet строит множество из списка имен
func NewHeaderSet(names ...string) HeaderSet {
	hs := make(HeaderSet, len(names))
	for _, n := range names {
		hs[n] = struct{}{}
	}
	return hs
}

func (hs HeaderSet) Has(name string) bool {
	_, ok := hs[name]
	return ok
}

// Sorted возвращает имена в лексикографическом порядке
func (hs HeaderSet) Sorted() []string {
	names := make([]string, 0, len(hs))
	for n := range hs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Intersect пересекает накопленное множество с очередным.
// nil в running означает, что ни один файл еще не учтен, и результатом будет копия incoming.
func Intersect(running, incoming HeaderSet) HeaderSet {
	if running == nil {
		out := make(HeaderSet, len(incoming))
		for n := range incoming {
			out[n] = struct{}{}
		}
		return out
	}

	out := make(HeaderSet)
	for n := range running {
		if incoming.Has(n) {
			out[n] = struct{}{}
		}
	}
	return out
}

// FileHeaders пересекает наборы заголовков внутри одного файла.
// false, если файл не содержит ни одного набора.
func FileHeaders(sets [][]string) (HeaderSet, bool) {
	var hs HeaderSet
	for _, set := range sets {
		hs = Intersect(hs, NewHeaderSet(set...))
	}
	return hs, hs != nil
}

// Intersector накапливает пересечение заголовков всех файлов; безопасен для конкурентного использования
type Intersector struct {
	mu  sync.Mutex
	set HeaderSet
}

// Add учитывает заголовки очередного файла
func (in *Intersector) Add(incoming HeaderSet) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.set = Intersect(in.set, incoming)
}

// Result возвращает итоговое множество; пустое, если не учтено ни одного файла
func (in *Intersector) Result() HeaderSet {
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.set == nil {
		return HeaderSet{}
	}
	return Intersect(nil, in.set)
}
