package webserver

import (
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer renders named html templates for c.Render.
type TemplateRenderer struct {
	templates *template.Template
}

func NewTemplateRenderer(t *template.Template) *TemplateRenderer {
	return &TemplateRenderer{templates: t}
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
