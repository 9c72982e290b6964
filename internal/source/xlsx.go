package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXReader читает первый лист книги: первая строка - заголовки, остальные - данные
type XLSXReader struct{}

func (XLSXReader) Read(path string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return nil, ErrEmptyFile
	}
	sheet := sheetList[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения строк листа %s: %w", sheet, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrEmptyFile
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения заголовков: %w", err)
	}
	if len(header) == 0 {
		return nil, ErrEmptyFile
	}

	ds := &Dataset{Path: path, Format: FormatXLSX, headerSets: [][]string{header}}
	for rows.Next() {
		row, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("ошибка чтения строки: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		// excelize отбрасывает пустые ячейки в конце строки
		for len(row) < len(header) {
			row = append(row, "")
		}
		ds.records = append(ds.records, Record{Headers: header, Values: row})
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("ошибка чтения листа %s: %w", sheet, err)
	}

	return ds, nil
}
