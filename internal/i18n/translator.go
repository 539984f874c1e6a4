// Package i18n holds every user-facing text of the bot in embedded YAML locales.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultLanguage is the locale the bot speaks.
const DefaultLanguage = "ru"

//go:embed locales
var LocalesFS embed.FS

// Translator resolves message keys to localized text.
type Translator struct {
	translations map[string]string
}

// NewTranslator loads locales/<langCode>.yaml from fsys.
func NewTranslator(fsys fs.FS, langCode string) (*Translator, error) {
	filePath := path.Join("locales", fmt.Sprintf("%s.yaml", langCode))

	data, err := fs.ReadFile(fsys, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read translation file %s: %w", filePath, err)
	}

	return newTranslatorFromBytes(data)
}

func newTranslatorFromBytes(data []byte) (*Translator, error) {
	var translations map[string]string
	if err := yaml.Unmarshal(data, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse translation file: %w", err)
	}
	return &Translator{translations: translations}, nil
}

var (
	defaultOnce sync.Once
	defaultTr   *Translator
)

// Default returns the translator for the embedded default locale.
// It panics if the embedded file is unreadable, which only a broken build can cause.
func Default() *Translator {
	defaultOnce.Do(func() {
		tr, err := NewTranslator(LocalesFS, DefaultLanguage)
		if err != nil {
			panic(err)
		}
		defaultTr = tr
	})
	return defaultTr
}

// T returns the text for key, formatted with args when given.
// Unknown keys are returned as-is.
func (t *Translator) T(key string, args ...interface{}) string {
	format, ok := t.translations[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Has reports whether key is defined.
func (t *Translator) Has(key string) bool {
	_, ok := t.translations[key]
	return ok
}
