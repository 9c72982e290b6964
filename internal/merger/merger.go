package merger

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ryabkov82/table-merger/internal/source"
)

// errNoHeaders файл разобран, но не содержит ни одного набора заголовков
var errNoHeaders = errors.New("файл не содержит заголовков")

// Source разобранный входной файл
type Source interface {
	HeaderSets() [][]string
	Records() []source.Record
}

// Loader открывает и разбирает входной файл
type Loader interface {
	Open(path string) (*source.Dataset, error)
}

// Skipped файл, не попавший в объединение
type Skipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report сводка по базовому объединению
type Report struct {
	FilesSeen     int       `json:"files_seen"`
	FilesMerged   int       `json:"files_merged"`
	Skipped       []Skipped `json:"skipped,omitempty"`
	RowsProjected int       `json:"rows_projected"`
	RowsDropped   int       `json:"rows_dropped"`
}

// Merger строит общую таблицу по набору файлов
type Merger struct {
	loader  Loader
	workers int
	log     *zap.Logger
}

// New создает Merger. workers ограничивает число файлов, разбираемых одновременно.
func New(loader Loader, workers int, log *zap.Logger) *Merger {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Merger{loader: loader, workers: workers, log: log}
}

// Basic выполняет базовое объединение: пересекает заголовки всех файлов,
// проецирует на них записи и сортирует строки по первой колонке.
// Ошибки отдельных файлов попадают в Report и не прерывают работу.
func (m *Merger) Basic(ctx context.Context, paths []string) (*Table, *Report, error) {
	report := &Report{FilesSeen: len(paths)}

	sources, failures, common, err := m.intersect(ctx, paths)
	if err != nil {
		return nil, nil, err
	}
	for i, ferr := range failures {
		if ferr == nil {
			continue
		}
		m.log.Warn("файл пропущен, данные не попадут в общую таблицу",
			zap.String("file", paths[i]), zap.Error(ferr))
		report.Skipped = append(report.Skipped, Skipped{Path: paths[i], Reason: ferr.Error()})
	}

	header := common.Sorted()
	m.log.Debug("общие заголовки", zap.Strings("headers", header))

	table := &Table{Header: header}
	for i, src := range sources {
		if src == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		report.FilesMerged++

		dropped := 0
		for _, rec := range src.Records() {
			row, ok := Project(header, rec.Headers, rec.Values)
			if !ok {
				dropped++
				continue
			}
			table.Rows = append(table.Rows, row)
		}
		if dropped > 0 {
			m.log.Debug("записи без общих колонок отброшены",
				zap.String("file", paths[i]), zap.Int("dropped", dropped))
		}
		report.RowsDropped += dropped
	}
	report.RowsProjected = table.Len()

	table.SortByFirstColumn()

	return table, report, nil
}

// intersect разбирает файлы параллельно и накапливает пересечение их заголовков.
// Для неразобранных файлов в sources остается nil, а в failures - причина.
func (m *Merger) intersect(ctx context.Context, paths []string) ([]Source, []error, HeaderSet, error) {
	sources := make([]Source, len(paths))
	failures := make([]error, len(paths))
	var acc Intersector

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := m.loader.Open(path)
			if err != nil {
				failures[i] = err
				return nil
			}
			hs, ok := FileHeaders(ds.HeaderSets())
			if !ok {
				failures[i] = errNoHeaders
				return nil
			}
			acc.Add(hs)
			sources[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return sources, failures, acc.Result(), nil
}
