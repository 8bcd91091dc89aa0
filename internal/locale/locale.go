// Package locale selects the message printer for the configured language.
//
// English strings are the message keys. Other languages are registered from
// embedded YAML catalogs mapping each English key to its translation.
package locale

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	English = "en"
	Russian = "ru"
)

//go:embed catalog/*.yaml
var embeddedCatalogFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

var (
	registerOnce sync.Once
	registerErr  error
	registered   []string
)

// Register loads the embedded catalogs into the default x/text catalog.
// It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		registered, registerErr = registerFS(embeddedCatalogFS)
	})
	return registerErr
}

func registerFS(catalogFS fs.FS) ([]string, error) {
	paths, err := fs.Glob(catalogFS, "catalog/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	sort.Strings(paths)
	locales := []string{English}
	for _, path := range paths {
		data, err := fs.ReadFile(catalogFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: parse locale %q: %w", path, file.Locale, err)
		}
		keys := make([]string, 0, len(file.Messages))
		for key := range file.Messages {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if err := message.SetString(tag, key, file.Messages[key]); err != nil {
				return nil, fmt.Errorf("catalog %s: set %q: %w", path, key, err)
			}
		}
		locales = append(locales, tag.String())
	}
	return locales, nil
}

// Supported returns every language with messages, English first.
func Supported() []string {
	if err := Register(); err != nil {
		return []string{English}
	}
	return append([]string(nil), registered...)
}

// Printer returns a printer for lang, falling back to English when lang is
// unknown or the catalogs failed to load.
func Printer(lang string) *message.Printer {
	if err := Register(); err != nil {
		return message.NewPrinter(language.English)
	}
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return message.NewPrinter(language.English)
	}
	for _, l := range registered {
		if l == tag.String() {
			return message.NewPrinter(tag)
		}
	}
	return message.NewPrinter(language.English)
}

// Text translates a fixed string that is not a literal at the call site,
// such as a rank or table name. An untranslated s is printed as is, percent
// signs included.
func Text(p *message.Printer, s string) string {
	return p.Sprintf(message.Key(s, strings.ReplaceAll(s, "%", "%%")))
}
