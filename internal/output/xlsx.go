package output

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ryabkov82/table-merger/internal/merger"
)

// SheetName имя листа с результатом
const SheetName = "merged"

// XLSXPath путь книги рядом с текстовым результатом: my_basic_result.tsv -> my_basic_result.xlsx
func XLSXPath(textPath string) string {
	return strings.TrimSuffix(textPath, filepath.Ext(textPath)) + ".xlsx"
}

// WriteXLSX сохраняет таблицу в книгу path на лист SheetName.
// Заголовки выделяются жирным, целые значения метрик пишутся числами.
func WriteXLSX(path string, t *merger.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if _, err := f.NewSheet(SheetName); err != nil {
		return fmt.Errorf("ошибка создания листа: %w", err)
	}
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return fmt.Errorf("ошибка удаления листа %s: %w", defaultSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("ошибка создания стиля заголовков: %v", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("ошибка создания StreamWriter: %v", err)
	}

	rowCounter := 1
	if len(t.Header) > 0 {
		headerRow := make([]interface{}, len(t.Header))
		for i, h := range t.Header {
			headerRow[i] = excelize.Cell{Value: h, StyleID: headerStyle}
		}
		if err := sw.SetRow(cellName(rowCounter), headerRow); err != nil {
			return fmt.Errorf("ошибка записи заголовков: %v", err)
		}
		rowCounter++
	}

	for _, row := range t.Rows {
		rowData := make([]interface{}, len(row))
		for i, v := range row {
			rowData[i] = cellValue(v)
		}
		if err := sw.SetRow(cellName(rowCounter), rowData); err != nil {
			return fmt.Errorf("ошибка записи строки %d: %v", rowCounter, err)
		}
		rowCounter++
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("ошибка финального flush: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("ошибка сохранения файла %s: %w", path, err)
	}
	return nil
}

func cellName(row int) string {
	return fmt.Sprintf("A%d", row)
}

// cellValue возвращает число для целых значений без ведущих нулей, иначе исходную строку
func cellValue(v string) interface{} {
	if n, err := strconv.ParseInt(v, 10, 64); err == nil && strconv.FormatInt(n, 10) == v {
		return n
	}
	return v
}
