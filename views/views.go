package views

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var files embed.FS

var funcMap = template.FuncMap{
	// price renders a money amount with two decimals.
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	// pages enumerates page numbers for the paginator.
	"pages": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

var templates = template.Must(
	template.New("").Funcs(funcMap).ParseFS(files, "templates/*.html"),
)

// Render writes the named page template. A template failure at this point
// means the response is already half-written, so it is only logged.
func Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		zap.S().Errorf("rendering %s: %v", name, err)
	}
}
