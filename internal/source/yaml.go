package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// errYAMLShape документ не является отображением "категория -> список отображений"
var errYAMLShape = errors.New("ожидается отображение категорий в списки записей")

// YAMLReader читает YAML файлы той же структуры, что и JSON.
// Пустой документ не содержит ни заголовков, ни записей.
type YAMLReader struct{}

func (YAMLReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	return readYAML(path, f)
}

func readYAML(path string, r io.Reader) (*Dataset, error) {
	ds := &Dataset{Path: path, Format: FormatYAML}

	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return ds, nil
		}
		return nil, fmt.Errorf("ошибка разбора YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return ds, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errYAMLShape
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		category, items := root.Content[i].Value, root.Content[i+1]
		if items.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("категория %s: %w", category, errYAMLShape)
		}
		for j, item := range items.Content {
			if item.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("категория %s, запись %d: %w", category, j, errYAMLShape)
			}
			headers, values, err := flattenMapping(item)
			if err != nil {
				return nil, fmt.Errorf("категория %s, запись %d: %w", category, j, err)
			}
			ds.addRecord(headers, values)
		}
	}

	return ds, nil
}

// flattenMapping раскладывает отображение на ключи и значения в порядке документа
func flattenMapping(node *yaml.Node) ([]string, []string, error) {
	headers := make([]string, 0, len(node.Content)/2)
	values := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		value, err := stringifyYAML(node.Content[i+1])
		if err != nil {
			return nil, nil, err
		}
		headers = append(headers, node.Content[i].Value)
		values = append(values, value)
	}
	return headers, values, nil
}

func stringifyYAML(node *yaml.Node) (string, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode {
		if node.ShortTag() == "!!null" {
			return "", nil
		}
		return node.Value, nil
	}
	b, err := yaml.Marshal(node)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации значения: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
