package source

import (
	"fmt"
)

// Record одна запись файла: имена полей и значения, выровненные по позиции
type Record struct {
	Headers []string
	Values  []string
}

// Dataset разобранный входной файл
type Dataset struct {
	Path   string
	Format Format

	headerSets [][]string
	records    []Record
}

// HeaderSets возвращает наборы заголовков файла.
// Для CSV и XLSX это одна строка заголовков, для JSON, XML и YAML - набор ключей каждой записи.
func (d *Dataset) HeaderSets() [][]string {
	return d.headerSets
}

// Records возвращает записи файла в порядке следования
func (d *Dataset) Records() []Record {
	return d.records
}

// addRecord добавляет запись со своим набором заголовков
func (d *Dataset) addRecord(headers, values []string) {
	d.headerSets = append(d.headerSets, headers)
	d.records = append(d.records, Record{Headers: headers, Values: values})
}

// Reader разбирает файл одного формата
type Reader interface {
	Read(path string) (*Dataset, error)
}

// Registry сопоставляет формат и читатель
type Registry map[Format]Reader

// DefaultRegistry возвращает читатели всех поддерживаемых форматов
func DefaultRegistry() Registry {
	return Registry{
		FormatCSV:  CSVReader{},
		FormatJSON: JSONReader{},
		FormatXML:  XMLReader{},
		FormatYAML: YAMLReader{},
		FormatXLSX: XLSXReader{},
	}
}

// Open разбирает файл читателем, выбранным по расширению
func (r Registry) Open(path string) (*Dataset, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	reader, ok := r[format]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	ds, err := reader.Read(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора %s: %w", path, err)
	}
	return ds, nil
}
