package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName      = ".table-merger"
	configType      = "yaml"
	envPrefix       = "TABLE_MERGER"
	envKeySeparator = "_"
)

// Значения по умолчанию
const (
	DefaultInputDir       = "."
	DefaultBasicOutput    = "my_basic_result.tsv"
	DefaultAdvancedOutput = "my_advanced_result.tsv"
	DefaultSplitColumn    = "M1"
	DefaultLogLevel       = "info"
	DefaultLogEncoding    = "console"
)

// Config параметры запуска
type Config struct {
	InputDir       string    `mapstructure:"dir"`
	BasicOutput    string    `mapstructure:"basic_output"`
	AdvancedOutput string    `mapstructure:"advanced_output"`
	SplitColumn    string    `mapstructure:"split_column"`
	Workers        int       `mapstructure:"workers"`
	XLSX           bool      `mapstructure:"xlsx"`
	Log            LogConfig `mapstructure:"log"`
}

// LogConfig параметры логирования
type LogConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// flagKeys сопоставляет флаги командной строки и ключи конфигурации
var flagKeys = map[string]string{
	"dir":          "dir",
	"basic-out":    "basic_output",
	"advanced-out": "advanced_output",
	"split-column": "split_column",
	"workers":      "workers",
	"xlsx":         "xlsx",
	"log-level":    "log.level",
	"log-encoding": "log.encoding",
}

// RegisterFlags добавляет флаги конфигурации в набор fs
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("dir", DefaultInputDir, "папка с исходными файлами")
	fs.String("basic-out", DefaultBasicOutput, "файл базового результата")
	fs.String("advanced-out", DefaultAdvancedOutput, "файл результата с суммированием метрик")
	fs.String("split-column", DefaultSplitColumn, "первая колонка метрик")
	fs.Int("workers", runtime.NumCPU(), "количество файлов, разбираемых одновременно")
	fs.Bool("xlsx", false, "дополнительно сохранять результаты в XLSX")
	fs.String("log-level", DefaultLogLevel, "уровень логирования")
	fs.String("log-encoding", DefaultLogEncoding, "формат логов: console или json")
}

// Load собирает конфигурацию из значений по умолчанию, файла, переменных окружения и флагов.
// Если configPath пуст, файл .table-merger.yaml ищется в текущей папке; его отсутствие не ошибка.
func Load(configPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	applyDefaults(v)

	v.SetConfigType(configType)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", envKeySeparator))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if flag := fs.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("ошибка привязки флага %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Нормализация путей
	cfg.InputDir = filepath.Clean(cfg.InputDir)
	cfg.BasicOutput = filepath.Clean(cfg.BasicOutput)
	cfg.AdvancedOutput = filepath.Clean(cfg.AdvancedOutput)

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("dir", DefaultInputDir)
	v.SetDefault("basic_output", DefaultBasicOutput)
	v.SetDefault("advanced_output", DefaultAdvancedOutput)
	v.SetDefault("split_column", DefaultSplitColumn)
	v.SetDefault("workers", runtime.NumCPU())
	v.SetDefault("xlsx", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.encoding", DefaultLogEncoding)
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch {
	case c.InputDir == "":
		return fmt.Errorf("не указана папка с исходными файлами")
	case c.BasicOutput == "" || c.AdvancedOutput == "":
		return fmt.Errorf("не указаны файлы результата")
	case filepath.Clean(c.BasicOutput) == filepath.Clean(c.AdvancedOutput):
		return fmt.Errorf("базовый и расширенный результаты не могут писаться в один файл %s", c.BasicOutput)
	case c.SplitColumn == "":
		return fmt.Errorf("не указана первая колонка метрик")
	case c.Workers < 1:
		return fmt.Errorf("количество обработчиков должно быть не меньше 1, указано %d", c.Workers)
	}
	return nil
}
