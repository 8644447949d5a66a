// Package i18nfs loads translation tables from messages.<lang>.toml files
// in an fs.FS, typically the embedded localization directory.
package i18nfs

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

	domainlocale "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/locale"
	apperrors "github.com/syed-arham-coder/Pak-Turk-sub001/internal/errors"
	"github.com/syed-arham-coder/Pak-Turk-sub001/internal/i18n"
)

var unmarshalFuncs = map[string]goi18n.UnmarshalFunc{
	"toml": toml.Unmarshal,
}

// Source implements the TranslationSource port over message files.
type Source struct {
	fsys fs.FS
	dir  string
}

// NewSource creates a translation source reading from dir inside fsys.
func NewSource(fsys fs.FS, dir string) *Source {
	return &Source{fsys: fsys, dir: dir}
}

// LoadTable parses messages.<lang>.toml and flattens it into a lookup table.
func (s *Source) LoadTable(ctx context.Context, lang string) (i18n.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !domainlocale.LanguageSupported(lang) {
		return nil, apperrors.UnsupportedLocalef("language %q is not supported", lang)
	}

	path := fmt.Sprintf("%s/messages.%s.toml", s.dir, lang)
	buf, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return nil, apperrors.NotFoundf("no message file for language %q", lang)
	}

	file, err := goi18n.ParseMessageFileBytes(buf, path, unmarshalFuncs)
	if err != nil {
		return nil, fmt.Errorf("parse message file %s: %w", path, err)
	}

	table := make(i18n.Table, len(file.Messages))
	for _, msg := range file.Messages {
		if msg.Other == "" {
			continue
		}
		table[msg.ID] = msg.Other
	}
	return table, nil
}

// Languages reports which supported languages have a message file present.
func (s *Source) Languages() []string {
	var langs []string
	for _, lang := range domainlocale.SupportedLanguages {
		path := fmt.Sprintf("%s/messages.%s.toml", s.dir, lang)
		if _, err := fs.Stat(s.fsys, path); err == nil {
			langs = append(langs, lang)
		}
	}
	return langs
}
