// Package app связывает этапы объединения: поиск файлов, базовую таблицу и суммирование метрик.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ryabkov82/table-merger/internal/config"
	"github.com/ryabkov82/table-merger/internal/merger"
	"github.com/ryabkov82/table-merger/internal/output"
	"github.com/ryabkov82/table-merger/internal/source"
)

// Result итог запуска
type Result struct {
	OutputFiles   []string       `json:"output_files,omitempty"`
	BasicRows     int            `json:"basic_rows"`
	AdvancedRows  int            `json:"advanced_rows"`
	Report        *merger.Report `json:"report,omitempty"`
	DiscoverError string         `json:"discover_error,omitempty"`
	AdvancedError string         `json:"advanced_error,omitempty"`
}

// Run выполняет объединение по конфигурации.
// Ошибка возвращается только если не удалось записать базовый результат или контекст отменен;
// проблемы отдельных файлов и этапа суммирования попадают в Result.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Result, error) {
	res := &Result{}

	files, err := source.Discover(cfg.InputDir)
	if err != nil {
		log.Error("папка с исходными файлами недоступна", zap.String("dir", cfg.InputDir), zap.Error(err))
		res.DiscoverError = err.Error()
		files = nil
	}
	files = excludeOutputs(files, cfg)
	log.Info("найдены файлы", zap.String("dir", cfg.InputDir), zap.Int("count", len(files)))

	m := merger.New(source.DefaultRegistry(), cfg.Workers, log)
	basic, report, err := m.Basic(ctx, files)
	if err != nil {
		return nil, fmt.Errorf("ошибка объединения: %w", err)
	}
	res.Report = report
	res.BasicRows = basic.Len()

	written, err := writeResult(cfg.BasicOutput, basic, cfg.XLSX)
	if err != nil {
		return nil, err
	}
	res.OutputFiles = append(res.OutputFiles, written...)
	log.Info("базовый результат сохранен", zap.String("file", cfg.BasicOutput), zap.Int("rows", basic.Len()))

	if len(files) == 0 {
		log.Info("нет поддерживаемых файлов, суммирование пропущено")
		return res, nil
	}

	advanced, err := merger.Aggregate(basic, cfg.SplitColumn)
	if err != nil {
		log.Error("суммирование метрик не выполнено", zap.Error(err))
		res.AdvancedError = err.Error()
		return res, nil
	}
	res.AdvancedRows = advanced.Len()

	written, err = writeResult(cfg.AdvancedOutput, advanced, cfg.XLSX)
	if err != nil {
		log.Error("расширенный результат не сохранен", zap.Error(err))
		res.AdvancedError = err.Error()
		return res, nil
	}
	res.OutputFiles = append(res.OutputFiles, written...)
	log.Info("расширенный результат сохранен", zap.String("file", cfg.AdvancedOutput), zap.Int("rows", advanced.Len()))

	return res, nil
}

func writeResult(path string, t *merger.Table, withXLSX bool) ([]string, error) {
	if err := output.WriteTextFile(path, t); err != nil {
		return nil, err
	}
	written := []string{path}

	if withXLSX {
		xlsxPath := output.XLSXPath(path)
		if err := output.WriteXLSX(xlsxPath, t); err != nil {
			return written, err
		}
		written = append(written, xlsxPath)
	}
	return written, nil
}

// excludeOutputs убирает из входных файлов собственные результаты предыдущих запусков
func excludeOutputs(files []string, cfg *config.Config) []string {
	skip := make(map[string]struct{})
	for _, p := range []string{cfg.BasicOutput, cfg.AdvancedOutput} {
		for _, candidate := range []string{p, output.XLSXPath(p)} {
			if abs, err := filepath.Abs(candidate); err == nil {
				skip[abs] = struct{}{}
			}
		}
	}

	out := files[:0]
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			if _, ok := skip[abs]; ok {
				continue
			}
		}
		out = append(out, f)
	}
	return out
}
