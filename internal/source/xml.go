package source

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// XMLReader читает XML файлы, где каждый элемент <objects> корня - отдельная запись,
// а его дочерние элементы - поля с атрибутом name и значением в первом вложенном элементе.
type XMLReader struct{}

type xmlDocument struct {
	Objects []xmlObject `xml:"objects"`
}

type xmlObject struct {
	Fields []xmlField `xml:",any"`
}

type xmlField struct {
	XMLName xml.Name
	Name    *string    `xml:"name,attr"`
	Values  []xmlValue `xml:",any"`
}

type xmlValue struct {
	Text string `xml:",chardata"`
}

func (XMLReader) Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer f.Close()

	return readXML(path, f)
}

func readXML(path string, r io.Reader) (*Dataset, error) {
	var doc xmlDocument
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyFile
		}
		return nil, fmt.Errorf("ошибка разбора XML: %w", err)
	}

	ds := &Dataset{Path: path, Format: FormatXML}
	for i, obj := range doc.Objects {
		headers := make([]string, 0, len(obj.Fields))
		values := make([]string, 0, len(obj.Fields))
		for _, field := range obj.Fields {
			if field.Name == nil {
				return nil, fmt.Errorf("запись %d: у элемента <%s> нет атрибута name", i, field.XMLName.Local)
			}
			value := ""
			if len(field.Values) > 0 {
				value = field.Values[0].Text
			}
			headers = append(headers, *field.Name)
			values = append(values, value)
		}
		ds.addRecord(headers, values)
	}

	return ds, nil
}
