package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const utf8BOM = "\uFEFF"

// CSVReader читает CSV файлы с одной строкой заголовков
type CSVReader struct{}

func (CSVReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	return readCSV(path, f)
}

func readCSV(path string, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовков: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	ds := &Dataset{Path: path, Format: FormatCSV, headerSets: [][]string{header}}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		ds.records = append(ds.records, Record{Headers: header, Values: row})
	}

	return ds, nil
}
