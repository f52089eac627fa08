package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Codelizard/HeroesOfCordan/pkg/content"
)

// Content operations (filesystem-backed)

// LoadCatalog reads and validates a content catalog. Files ending in .json are
// read as JSON, anything else as YAML. Unknown fields are rejected.
func LoadCatalog(path string) (*content.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			absPath, _ := filepath.Abs(path)
			return nil, fmt.Errorf("catalog not found: %s", absPath)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	f, err := DecodeCatalogFile(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}
	return content.NewCatalog(f)
}

// DecodeCatalogFile parses the authored form of a catalog.
func DecodeCatalogFile(data []byte, isJSON bool) (*content.CatalogFile, error) {
	var f content.CatalogFile
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
		return &f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, err
	}
	return &f, nil
}
