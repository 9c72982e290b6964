package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Format тип входного файла
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

var (
	// ErrUnsupportedFormat расширение файла не поддерживается
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат файла")
	// ErrEmptyFile файл пустой и не содержит заголовков
	ErrEmptyFile = errors.New("файл пустой")
)

var extensions = map[string]Format{
	".csv":  FormatCSV,
	".json": FormatJSON,
	".xml":  FormatXML,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".xlsx": FormatXLSX,
}

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Discover возвращает отсортированный список поддерживаемых файлов в папке dir.
// Вложенные папки не обходятся.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения папки %s: %w", dir, err)
	}

	files := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := FormatFromPath(entry.Name()); !ok {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}
