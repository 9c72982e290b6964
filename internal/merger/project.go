package merger

// Project переставляет значения записи в порядке общих заголовков common.
// Возвращает false, если common пуст, какого-то заголовка нет в записи
// или для него не хватает значения: такая запись отбрасывается.
func Project(common, rowHeaders, rowValues []string) ([]string, bool) {
	if len(common) == 0 {
		return nil, false
	}

	positions := make(map[string]int, len(rowHeaders))
	for i, h := range rowHeaders {
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}

	out := make([]string, 0, len(common))
	for _, name := range common {
		idx, ok := positions[name]
		if !ok || idx >= len(rowValues) {
			return nil, false
		}
		out = append(out, rowValues[idx])
	}
	return out, true
}
