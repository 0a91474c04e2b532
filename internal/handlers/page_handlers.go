// File: internal/handlers/page_handlers.go
package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// renderMarkdown converts assistant replies and recipe steps to HTML for
// the page templates. Falls back to escaped plain text when conversion
// fails.
func renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// loadTemplateCache creates separate template sets for each page.
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{"index.html", "login.html", "register.html", "dashboard.html", "error.html"}

	for _, tmpl := range templates {
		ts := template.New(tmpl).Funcs(template.FuncMap{"markdown": renderMarkdown})

		ts, err := ts.ParseFiles("web/templates/layout.html")
		if err != nil {
			log.Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}

		ts, err = ts.ParseFiles("web/templates/" + tmpl)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}

		templateCache[tmpl] = ts
	}
}

// renderTemplate renders a cached page with security headers applied.
func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "index.html", nil)
}

func (h *PageHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "login.html", nil)
}

func (h *PageHandler) ShowRegisterPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "register.html", nil)
}

func (h *PageHandler) ShowDashboardPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, "dashboard.html", nil)
}

func (h *PageHandler) ShowErrorPage(w http.ResponseWriter, code, title, message string) {
	renderTemplate(w, "error.html", map[string]interface{}{
		"Code":    code,
		"Title":   title,
		"Message": message,
	})
}
