package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Codelizard/HeroesOfCordan/internal/storage"
	"github.com/Codelizard/HeroesOfCordan/pkg/content"
	"github.com/Codelizard/HeroesOfCordan/pkg/engine"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.yaml|catalog.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &CatalogValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	for _, w := range validator.warnings {
		fmt.Println(w)
	}
	fmt.Println("Catalog file is valid!")
}

type CatalogValidator struct {
	errors   []string
	warnings []string
}

func (v *CatalogValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	switch ext {
	case ".yaml", ".yml", ".json":
	default:
		return fmt.Errorf("catalog file must have .yaml, .yml or .json extension: %s", baseName)
	}
	if !isValidCatalogFilename(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., my_catalog.yaml)", baseName)
	}

	// LoadCatalog decodes strictly and runs the content rules.
	catalog, err := storage.LoadCatalog(filename)
	if err != nil {
		return err
	}

	v.errors = nil
	v.warnings = nil
	v.validateMessages(catalog)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	fmt.Printf("%d heroes, %d tiers\n", len(catalog.Heroes()), catalog.TierCount())
	return nil
}

func (v *CatalogValidator) validateMessages(c *content.Catalog) {
	for _, key := range c.MissingMessages(engine.MessageKeys) {
		v.addError(fmt.Sprintf("missing static message '%s'", key))
	}

	// The engine has fallback text for these.
	for _, cat := range c.MissingCategories(engine.DynamicCategories) {
		v.addWarning(fmt.Sprintf("dynamic category '%s' has no text, the default will be used", cat))
	}
}

func (v *CatalogValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func (v *CatalogValidator) addWarning(msg string) {
	v.warnings = append(v.warnings, "warning: "+msg)
}

var validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidCatalogFilename(name string) bool {
	// Allow 'x.' prefix for experimental catalogs
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
