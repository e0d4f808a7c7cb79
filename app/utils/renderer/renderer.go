package renderer

import (
	"net/http"

	"github.com/unrolled/render"
)

type ErrorBody struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// New builds the JSON renderer shared by all handlers. Development mode
// indents the output.
func New(dev bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    dev,
		IsDevelopment: dev,
		UnEscapeHTML:  true,
	})
}

func Error(r *render.Render, w http.ResponseWriter, status int, message string) {
	_ = r.JSON(w, status, ErrorBody{Status: "error", Message: message})
}

func ValidationError(r *render.Render, w http.ResponseWriter, fields map[string]string) {
	_ = r.JSON(w, http.StatusBadRequest, ErrorBody{Status: "error", Message: "validation failed", Errors: fields})
}
