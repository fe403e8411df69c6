package output

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/arthur-debert/slinky/pkg/errors"
	"github.com/arthur-debert/slinky/pkg/ui"
	"github.com/arthur-debert/slinky/pkg/ui/styles"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Renderer writes results to w in one resolved format.
type Renderer struct {
	w      io.Writer
	format ui.Format
	styles *styles.Registry
	tmpl   *template.Template
}

// New creates a renderer for w. FormatAuto is resolved against w here, so a
// renderer never changes format midway.
func New(w io.Writer, format ui.Format) (*Renderer, error) {
	r := &Renderer{
		w:      w,
		format: ui.Resolve(format, w),
		styles: styles.Default(),
	}

	tmpl, err := template.New("output").Funcs(template.FuncMap{
		"style": r.style,
		"join":  strings.Join,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to parse output templates")
	}
	r.tmpl = tmpl
	return r, nil
}

// Format returns the resolved output format.
func (r *Renderer) Format() ui.Format {
	return r.format
}

// Writer returns the underlying writer.
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// style applies a named style in terminal mode only
func (r *Renderer) style(name, text string) string {
	if r.format != ui.FormatTerminal {
		return text
	}
	return r.styles.Render(name, text)
}

func (r *Renderer) execute(name string, data interface{}) error {
	if err := r.tmpl.ExecuteTemplate(r.w, name, data); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to render %s", name)
	}
	return nil
}

func (r *Renderer) json(v interface{}) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON output")
	}
	return nil
}

// Message prints a one-line note in the named style. JSON output skips
// notes so stdout stays a single document.
func (r *Renderer) Message(style, format string, args ...interface{}) {
	if r.format == ui.FormatJSON {
		return
	}
	_, _ = fmt.Fprintln(r.w, r.style(style, fmt.Sprintf(format, args...)))
}

// Value writes an arbitrary value: JSON in JSON mode, otherwise its string
// form followed by a newline.
func (r *Renderer) Value(v interface{}) error {
	if r.format == ui.FormatJSON {
		return r.json(v)
	}
	_, err := fmt.Fprintln(r.w, v)
	return err
}
