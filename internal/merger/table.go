package merger

import "sort"

// Table результирующая таблица: строка заголовков и строки данных той же длины
type Table struct {
	Header []string
	Rows   [][]string
}

// Len количество строк данных
func (t *Table) Len() int {
	return len(t.Rows)
}

// SortByFirstColumn устойчиво сортирует строки данных по первой колонке
func (t *Table) SortByFirstColumn() {
	sortByFirstColumn(t.Rows)
}

func sortByFirstColumn(rows [][]string) {
	sort.SliceStable(rows, func(i, j int) bool {
		return firstColumn(rows[i]) < firstColumn(rows[j])
	})
}

func firstColumn(row []string) string {
	if len(row) == 0 {
		return ""
	}
	return row[0]
}
