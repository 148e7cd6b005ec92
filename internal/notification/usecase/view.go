package usecase

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewLeadSales     = "lead_sales.html"
	viewLeadCustomer  = "lead_customer.html"
	viewAdminSecurity = "admin_security.html"
)

type siteData struct {
	CompanyName  string
	SupportEmail string
	URL          string
	Address      string
}

type viewData struct {
	Subject string
	Site    siteData
	Year    int
	Data    any
}

// views holds one template set per page. Each set is the shared layout
// plus a page that defines "content".
type views struct {
	pages map[string]*template.Template
}

func parseViews() (*views, error) {
	layout, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("notification: parse layout: %w", err)
	}

	v := &views{pages: map[string]*template.Template{}}
	for _, name := range []string{viewLeadSales, viewLeadCustomer, viewAdminSecurity} {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		page, err := base.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("notification: parse %s: %w", name, err)
		}
		v.pages[name] = page
	}

	return v, nil
}

func (v *views) render(name string, data viewData) (string, error) {
	page, ok := v.pages[name]
	if !ok {
		return "", fmt.Errorf("notification: unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := page.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("notification: render %s: %w", name, err)
	}

	return buf.String(), nil
}
