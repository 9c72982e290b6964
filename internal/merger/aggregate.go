package merger

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrSplitColumnMissing в заголовке нет колонки, с которой начинаются метрики
var ErrSplitColumnMissing = errors.New("в заголовке нет колонки начала метрик")

// MetricError значение метрики в группируемой строке не является целым числом
type MetricError struct {
	Row    int // номер строки данных, начиная с 1
	Column string
	Value  string
	Err    error
}

func (e *MetricError) Error() string {
	return fmt.Sprintf("строка %d, колонка %s: значение %q не является целым числом: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *MetricError) Unwrap() error {
	return e.Err
}

// SummedHeader переименовывает колонки, начинающиеся с "M", в "MS..."
func SummedHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		if strings.HasPrefix(name, "M") {
			name = "MS" + name[1:]
		}
		out[i] = name
	}
	return out
}

type group struct {
	members []int
}

// Aggregate группирует строки базовой таблицы с одинаковыми ключевыми колонками
// (все колонки левее split) и поэлементно суммирует их метрики.
// Строки без пары переносятся без изменений. Результат отсортирован по первой колонке.
func Aggregate(basic *Table, split string) (*Table, error) {
	k := -1
	for i, name := range basic.Header {
		if name == split {
			k = i
			break
		}
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSplitColumnMissing, split)
	}

	groups := make(map[string]*group)
	order := make([]*group, 0, len(basic.Rows))
	for i, row := range basic.Rows {
		if len(row) != len(basic.Header) {
			return nil, fmt.Errorf("строка %d: ожидается %d значений, получено %d", i+1, len(basic.Header), len(row))
		}
		key := groupKey(row[:k])
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, i)
	}

	var grouped, passthrough [][]string
	for _, g := range order {
		if len(g.members) == 1 {
			continue
		}
		sums, err := sumMetrics(basic, g.members, k)
		if err != nil {
			return nil, err
		}
		first := basic.Rows[g.members[0]]
		row := make([]string, 0, len(first))
		row = append(row, first[:k]...)
		for _, s := range sums {
			row = append(row, strconv.FormatInt(s, 10))
		}
		grouped = append(grouped, row)
	}
	for _, row := range basic.Rows {
		if len(groups[groupKey(row[:k])].members) == 1 {
			passthrough = append(passthrough, append([]string(nil), row...))
		}
	}

	rows := append(grouped, passthrough...)
	sortByFirstColumn(rows)

	return &Table{Header: SummedHeader(basic.Header), Rows: rows}, nil
}

func sumMetrics(basic *Table, members []int, k int) ([]int64, error) {
	sums := make([]int64, len(basic.Header)-k)
	for _, idx := range members {
		for j, raw := range basic.Rows[idx][k:] {
			v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return nil, &MetricError{Row: idx + 1, Column: basic.Header[k+j], Value: raw, Err: err}
			}
			if (v > 0 && sums[j] > math.MaxInt64-v) || (v < 0 && sums[j] < math.MinInt64-v) {
				return nil, &MetricError{Row: idx + 1, Column: basic.Header[k+j], Value: raw, Err: strconv.ErrRange}
			}
			sums[j] += v
		}
	}
	return sums, nil
}

// groupKey кодирует ключевые колонки с длинами, чтобы разные наборы не совпадали
func groupKey(cols []string) string {
	var b strings.Builder
	for _, c := range cols {
		b.WriteString(strconv.Itoa(len(c)))
		b.WriteByte(':')
		b.WriteString(c)
	}
	return b.String()
}
