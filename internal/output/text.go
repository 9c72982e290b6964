package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ryabkov82/table-merger/internal/merger"
)

// Separator разделитель полей в текстовом результате
const Separator = " "

// WriteText пишет таблицу построчно: сначала заголовки, затем данные.
// Пустой заголовок дает пустую первую строку.
func WriteText(w io.Writer, t *merger.Table) error {
	bw := bufio.NewWriter(w)
	if err := writeLine(bw, t.Header); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := writeLine(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeLine(w *bufio.Writer, fields []string) error {
	if _, err := w.WriteString(strings.Join(fields, Separator)); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

// WriteTextFile создает (или перезаписывает) файл path и пишет в него таблицу
func WriteTextFile(path string, t *merger.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", path, err)
	}
	if err := WriteText(f, t); err != nil {
		_ = f.Close()
		return fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия файла %s: %w", path, err)
	}
	return nil
}
