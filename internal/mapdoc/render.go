package mapdoc

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/couchcryptid/hurricane-tracks/internal/domain"
	"github.com/couchcryptid/hurricane-tracks/internal/fsutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// generatedLayout stamps the page footer.
const generatedLayout = "2006-01-02 15:04 MST"

var funcs = template.FuncMap{
	"coord": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}

func newTemplates() (*template.Template, error) {
	return template.New("mapdoc").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl")
}

type pageView struct {
	Title       string
	GeneratedAt string
	Legend      []domain.CategoryStyle
	Summaries   []domain.Summary
	Data        mapData
}

// Render writes doc as a self-contained HTML page.
func Render(w io.Writer, doc Document) error {
	tmpl, err := newTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	data, err := buildMapData(tmpl, doc)
	if err != nil {
		return err
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}
	generated := doc.GeneratedAt
	if generated.IsZero() {
		generated = domain.Now()
	}

	view := pageView{
		Title:       title,
		GeneratedAt: generated.UTC().Format(generatedLayout),
		Legend:      domain.Legend(),
		Summaries:   doc.Summaries(),
		Data:        data,
	}
	if err := tmpl.ExecuteTemplate(w, "map", view); err != nil {
		return fmt.Errorf("render map: %w", err)
	}
	return nil
}

// FileWriter renders documents to a fixed path, replacing any previous
// version in one step.
type FileWriter struct {
	Path string
}

// Write renders doc to the writer's path.
func (fw FileWriter) Write(doc Document) error {
	if err := fsutil.WriteAtomic(fw.Path, func(w io.Writer) error {
		return Render(w, doc)
	}); err != nil {
		return fmt.Errorf("write map %s: %w", fw.Path, err)
	}
	return nil
}
