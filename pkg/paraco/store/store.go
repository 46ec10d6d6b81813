package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/fptkit/paraco/pkg/paraco/model"
)

// Format selects the encoding of a persisted Document.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatAuto, "":
		return FormatAuto, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q: expected auto, json or yaml", s)
}

// Resolve turns FormatAuto into a concrete format based on the file
// extension of path. Anything that is not .yaml or .yml is JSON.
func (f Format) Resolve(path string) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Encode writes the document of m to w.
func Encode(m *model.Model, w io.Writer, format Format) error {
	doc := NewDocument(m)
	var (
		data []byte
		err  error
	)
	switch format.Resolve("") {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = jsonMarshal(doc)
	}
	if err != nil {
		return fmt.Errorf("error encoding document: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

// Decode reads a document from r and builds its Model. Any error leaves
// the caller's state untouched; a MalformedDocument is returned for
// content that cannot be turned into a Model.
func Decode(r io.Reader, format Format) (*model.Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading document: %w", err)
	}
	var doc *Document
	switch format.Resolve("") {
	case FormatYAML:
		doc, err = yamlDocument(data)
	default:
		doc, err = jsonDocument(data)
	}
	if err != nil {
		return nil, err
	}
	return doc.Model()
}

// Save writes m to path. The document is written to a temporary file in
// the same directory and renamed into place, so a failed save never
// leaves a truncated file behind.
func Save(m *model.Model, path string, format Format) error {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := Encode(m, tmp, format.Resolve(path)); err != nil {
		tmp.Close()
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error saving %s: %w", path, err)
	}
	return nil
}

// Load reads the Model stored at path.
func Load(path string, format Format) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f, format.Resolve(path))
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return m, nil
}

func jsonMarshal(doc *Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func jsonDocument(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, malformed(nil, "invalid JSON")
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, malformed(nil, "document is not an object")
	}
	for _, field := range requiredFields {
		if !gjson.GetBytes(data, field).Exists() {
			return nil, malformed(nil, "missing field %q", field)
		}
	}
	doc := &Document{}
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(doc); err != nil {
		return nil, malformed(err, "invalid JSON")
	}
	return doc, nil
}

func yamlDocument(data []byte) (*Document, error) {
	var fields map[string]interface{}
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, malformed(err, "invalid YAML")
	}
	if fields == nil {
		return nil, malformed(nil, "empty document")
	}
	for _, field := range requiredFields {
		if _, ok := fields[field]; !ok {
			return nil, malformed(nil, "missing field %q", field)
		}
	}
	doc := &Document{}
	if err := yaml.Unmarshal(data, doc); err != nil {
		return nil, malformed(err, "invalid YAML")
	}
	return doc, nil
}
