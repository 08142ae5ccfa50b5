// Package languages maps file names to the language identifiers that rules
// use in their appliesTo lists.
package languages

import (
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kayman-mk/DevSkim/internal/errs"
)

//go:embed languages.json
var defaultTable []byte

// ContentType associates a language name with its file extensions.
type ContentType struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}

type Table struct {
	types []ContentType
	byExt map[string]string
}

// Default returns the table shipped with the binary.
func Default() *Table {
	t, err := parse(defaultTable, "embedded")
	if err != nil {
		panic("languages: embedded table is invalid: " + err.Error())
	}
	return t
}

func Load(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(err, errs.CodeInternal, "read languages")
	}
	return parse(data, "reader")
}

func LoadFile(path string) (*Table, error) {
	if path == "" {
		return nil, errs.Argument("path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.FileNotFound(path)
		}
		return nil, errs.Wrapf(err, errs.CodeInternal, "read %s", path)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (*Table, error) {
	var types []ContentType
	if err := json.Unmarshal(data, &types); err != nil {
		return nil, errs.Parse(err, source)
	}

	t := &Table{types: types, byExt: make(map[string]string)}
	for _, ct := range types {
		for _, ext := range ct.Extensions {
			key := normalizeExt(ext)
			if _, exists := t.byExt[key]; exists {
				continue
			}
			t.byExt[key] = ct.Name
		}
	}
	return t, nil
}

// FromFileName returns the language for name's extension. The first content
// type listing an extension wins.
func (t *Table) FromFileName(name string) (string, bool) {
	ext := filepath.Ext(name)
	if ext == "" {
		return "", false
	}
	lang, ok := t.byExt[normalizeExt(ext)]
	return lang, ok
}

// Names returns the language names, sorted.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.types))
	for _, ct := range t.types {
		names = append(names, ct.Name)
	}
	sort.Strings(names)
	return names
}

func (t *Table) ContentTypes() []ContentType {
	return append([]ContentType(nil), t.types...)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
