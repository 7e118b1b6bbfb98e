// Copyright (c) 2026 Passgen Team
// Passgen - password generation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for Passgen.
// It uses the go-i18n library to load the embedded translation files, allowing
// the CLI and the terminal UI to be displayed in multiple languages.
package i18n // import "github.com/toeirei/passgen/internal/i18n"

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	localizer *i18n.Localizer
	current   string
)

// Init loads every embedded locale and selects lang. Unknown languages fall
// back to English.
func Init(lang string) {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}

	mu.Lock()
	defer mu.Unlock()
	current = normalize(b, lang)
	localizer = i18n.NewLocalizer(b, current)
}

func normalize(b *i18n.Bundle, lang string) string {
	lang = strings.TrimSpace(lang)
	for _, tag := range b.LanguageTags() {
		if strings.EqualFold(tag.String(), lang) {
			return tag.String()
		}
	}
	if tag, err := language.Parse(lang); err == nil {
		base, _ := tag.Base()
		for _, known := range b.LanguageTags() {
			if kb, _ := known.Base(); kb == base {
				return known.String()
			}
		}
	}
	return language.English.String()
}

// T translates messageID. A single map argument is passed as template data;
// any other arguments are applied fmt-style to the translated text. Missing
// IDs are returned unchanged.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init("en")
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language tag.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == "" {
		return language.English.String()
	}
	return current
}

// Languages returns the available locale tags mapped to their self-names,
// e.g. "ja" -> "日本語".
func Languages() map[string]string {
	out := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		tag := strings.TrimSuffix(f.Name(), path.Ext(f.Name()))
		t, err := language.Parse(tag)
		if err != nil {
			continue
		}
		out[tag] = display.Self.Name(t)
	}
	return out
}

// LanguageTags returns the keys of Languages in sorted order.
func LanguageTags() []string {
	langs := Languages()
	tags := make([]string, 0, len(langs))
	for k := range langs {
		tags = append(tags, k)
	}
	sort.Strings(tags)
	return tags
}
