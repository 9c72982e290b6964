package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"
)

// errJSONShape файл не является объектом "категория -> список объектов"
var errJSONShape = errors.New("ожидается объект вида {\"категория\": [{...}, ...]}")

// errJSONTrailing после корневого объекта есть лишние данные
var errJSONTrailing = errors.New("лишние данные после корневого объекта")

// JSONReader читает JSON файлы вида {"категория": [{"поле": значение, ...}, ...]}
type JSONReader struct{}

func (JSONReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	return readJSON(path, f)
}

func readJSON(path string, r io.Reader) (*Dataset, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON: %w", err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '{' {
		return nil, errJSONShape
	}

	ds := &Dataset{Path: path, Format: FormatJSON}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("ошибка разбора JSON: %w", err)
		}

		var items []map[string]interface{}
		if err := dec.Decode(&items); err != nil {
			return nil, fmt.Errorf("категория %v: %w: %v", key, errJSONShape, err)
		}
		for i, item := range items {
			if item == nil {
				return nil, fmt.Errorf("категория %v, запись %d: %w", key, i, errJSONShape)
			}
			headers, values := flattenObject(item)
			ds.addRecord(headers, values)
		}
	}

	tok, err = dec.Token()
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора JSON: %w", err)
	}
	if d, ok := tok.(gojson.Delim); !ok || d != '}' {
		return nil, errJSONShape
	}
	if dec.More() {
		return nil, errJSONTrailing
	}

	return ds, nil
}

// flattenObject раскладывает объект на выровненные списки ключей и значений.
// Ключи сортируются, чтобы порядок не зависел от обхода map.
func flattenObject(obj map[string]interface{}) ([]string, []string) {
	headers := make([]string, 0, len(obj))
	for k := range obj {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	values := make([]string, len(headers))
	for i, k := range headers {
		values[i] = stringifyJSON(obj[k])
	}
	return headers, values
}

func stringifyJSON(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case gojson.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := gojson.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
