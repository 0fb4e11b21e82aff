package handlers

import (
	"net/http"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "healthy", "service": a.Service})
}

type rootResponse struct {
	Service     string            `json:"service"`
	Version     string            `json:"version"`
	Description string            `json:"description"`
	Endpoints   map[string]string `json:"endpoints"`
	Fonts       []string          `json:"fonts"`
}

func (a *App) Root(w http.ResponseWriter, r *http.Request) {
	fonts := []string{}
	if a.Fonts != nil {
		fonts = a.Fonts.Families()
	}
	a.json(w, http.StatusOK, rootResponse{
		Service:     "Interior Signage Validator",
		Version:     a.Version,
		Description: "Validates and normalizes interior signage design specifications",
		Endpoints: map[string]string{
			"/validate":     "POST - Validate signage specification",
			"/health":       "GET - Health check",
			"/docs":         "GET - Interactive API documentation",
			"/openapi.json": "GET - OpenAPI document",
		},
		Fonts: fonts,
	})
}
