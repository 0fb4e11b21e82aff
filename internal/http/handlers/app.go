package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"signage/internal/domain/signage"
)

// SpecValidator validates and normalizes a raw design request.
type SpecValidator interface {
	Validate(raw signage.Input) (signage.Result, error)
}

// FontLister reports the font families shipped with the service.
type FontLister interface {
	Families() []string
}

type App struct {
	Validator SpecValidator
	Fonts     FontLister
	Logger    zerolog.Logger
	Service   string
	Version   string
}

func NewApp(validator SpecValidator, fonts FontLister, logger zerolog.Logger, service, version string) *App {
	return &App{Validator: validator, Fonts: fonts, Logger: logger, Service: service, Version: version}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]string{"error": errCode, "message": message})
}
