package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/ryabkov82/table-merger/internal/app"
	"github.com/ryabkov82/table-merger/internal/config"
	"github.com/ryabkov82/table-merger/internal/logger"
)

var version = "0.1.0"

type Output struct {
	Success  bool        `json:"success"`
	Result   *app.Result `json:"result,omitempty"`
	Error    string      `json:"error,omitempty"`
	Duration string      `json:"duration"`
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "table-merger",
		Short: "Объединение CSV, JSON, XML, YAML и XLSX файлов по общим колонкам",
		Long: `table-merger читает поддерживаемые файлы из папки, оставляет колонки,
общие для всех файлов, и пишет базовую таблицу. Затем строки с одинаковыми
ключевыми колонками (левее первой колонки метрик) объединяются с суммированием метрик.

В stdout выводится только JSON отчет о запуске, логи пишутся в stderr.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags())
			if err != nil {
				emitJSON(cmd.OutOrStdout(), Output{Success: false, Error: fmt.Sprintf("Ошибка конфигурации: %v", err)})
				return err
			}
			return run(cmd.Context(), cmd.OutOrStdout(), cfg)
		},
	}
	root.Flags().StringVar(&configPath, "config", "", "файл конфигурации (по умолчанию ./.table-merger.yaml)")
	config.RegisterFlags(root.Flags())

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Показать версию",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "table-merger v%s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "Go version: %s\n", runtime.Version())
		},
	})

	return root
}

func run(ctx context.Context, w io.Writer, cfg *config.Config) error {
	start := time.Now()

	zlog, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Encoding:    cfg.Log.Encoding,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		emitJSON(w, Output{Success: false, Error: fmt.Sprintf("Ошибка конфигурации: %v", err)})
		return err
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	res, err := app.Run(ctx, cfg, zlog)
	if err != nil {
		emitJSON(w, Output{
			Success:  false,
			Error:    fmt.Sprintf("Ошибка объединения: %v", err),
			Duration: time.Since(start).String(),
		})
		return nil
	}

	emitJSON(w, Output{
		Success:  res.AdvancedError == "" && res.DiscoverError == "",
		Result:   res,
		Duration: time.Since(start).String(),
	})
	return nil
}

func emitJSON(w io.Writer, out Output) {
	enc := gojson.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("Ошибка вывода JSON: %v", err)
	}
}
