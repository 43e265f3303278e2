package merge

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/pipelinetools/concoursemerge/internal/maputil"
	"github.com/pipelinetools/concoursemerge/internal/naming"
)

// RenameContext is the value a custom RenameTemplate is evaluated against.
type RenameContext struct {
	// Name is the colliding entity's original name.
	Name string
	// Source identifies which side of the merge is being renamed; always
	// "right" today, since only the right pipeline's entries are ever
	// renamed — left's name always wins a collision.
	Source string
	// Index is the zero-padded collision counter's current value.
	Index int
	// AllNames lists every name already taken in the merged list at the
	// point of this rename, sorted, so a template can pick a suffix that
	// reads as distinct from its neighbors instead of a bare counter.
	AllNames []string
}

// formatAlt renders the default "base-NNN" zero-padded collision name, or
// evaluates renameTmpl if one is given. A template error or a nil template
// both fall back to the default scheme, so a bad template degrades the
// output name rather than aborting the merge.
func formatAlt(base string, index int, renameTmpl *template.Template, existing map[string]struct{}) string {
	if renameTmpl == nil {
		return fmt.Sprintf("%s-%03d", base, index)
	}
	ctx := RenameContext{Name: base, Source: "right", Index: index, AllNames: maputil.SortedKeys(existing)}
	var buf bytes.Buffer
	if err := renameTmpl.Execute(&buf, ctx); err != nil {
		return fmt.Sprintf("%s-%03d", base, index)
	}
	return buf.String()
}

// CompileRenameTemplate parses a rename template string using the same
// case-conversion functions a schema rename template registers, adapted to
// this package's RenameContext. An empty template string returns a nil
// *template.Template, which callers should pass through unchanged to
// select the default "base-NNN" scheme.
func CompileRenameTemplate(tmpl string) (*template.Template, error) {
	if tmpl == "" {
		return nil, nil
	}
	funcs := template.FuncMap{
		"pascalCase":     naming.ToPascalCase,
		"camelCase":      naming.ToCamelCase,
		"snakeCase":      naming.ToSnakeCase,
		"kebabCase":      naming.ToKebabCase,
		"titleCaseWords": naming.ToTitleCaseWords,
		"default": func(def, val string) string {
			if val == "" {
				return def
			}
			return val
		},
		"coalesce": func(vals ...string) string {
			for _, v := range vals {
				if v != "" {
					return v
				}
			}
			return ""
		},
	}
	return template.New("rename").Funcs(funcs).Parse(tmpl)
}
