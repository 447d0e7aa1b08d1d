package http

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/jhoicas/invorya-insights/internal/application/dto"
	"github.com/jhoicas/invorya-insights/pkg/format"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Views implementa fiber.Views sobre html/template con las plantillas embebidas.
// Se parsea una sola vez en Load; después es de solo lectura.
type Views struct {
	tmpl *template.Template
}

// NewViews construye el motor de vistas (las plantillas se cargan en Load).
func NewViews() *Views {
	return &Views{}
}

var viewFuncs = template.FuncMap{
	"money":      format.Money,
	"moneyFloat": format.MoneyFloat,
	"number":     format.Number,
	"percent":    format.Percent,
	"join":       strings.Join,
	"groups":     func(title string, g []dto.ValuationGroupDTO) map[string]any {
		return map[string]any{"Title": title, "Groups": g}
	},
}

// Load parsea todas las plantillas de templates/.
func (v *Views) Load() error {
	t, err := template.New("").Funcs(viewFuncs).ParseFS(templatesFS, "templates/*.gohtml")
	if err != nil {
		return fmt.Errorf("views: parsear plantillas: %w", err)
	}
	v.tmpl = t
	return nil
}

// Render ejecuta la plantilla name. Los layouts de fiber no se usan:
// las páginas completas incluyen sus parciales con {{template}}.
func (v *Views) Render(w io.Writer, name string, data interface{}, _ ...string) error {
	if v.tmpl == nil {
		if err := v.Load(); err != nil {
			return err
		}
	}
	return v.tmpl.ExecuteTemplate(w, name, data)
}
