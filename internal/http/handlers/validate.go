package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"signage/internal/domain"
	"signage/internal/domain/signage"
	"signage/internal/middleware"
)

const (
	maxValidateBodyBytes = 1 << 20

	issueBadRequest = "Invalid request format. Please check the API documentation."
)

// DecodeInput reads a design request object. Numbers are kept as
// json.Number so numeric strings and literals coerce the same way.
func DecodeInput(r io.Reader) (signage.Input, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var in signage.Input
	if err := dec.Decode(&in); err != nil {
		return nil, errors.Join(domain.ErrInvalidPayload, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.Join(domain.ErrInvalidPayload, errors.New("trailing data after request object"))
	}
	if in == nil {
		in = signage.Input{}
	}
	return in, nil
}

// Validate checks a design request. Bad input is reported in the body with
// status 200; only an undecodable body or a broken metrics backend changes
// the status.
func (a *App) Validate(w http.ResponseWriter, r *http.Request) {
	logger := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()

	in, err := DecodeInput(http.MaxBytesReader(w, r.Body, maxValidateBodyBytes))
	if err != nil {
		logger.Debug().Err(err).Msg("undecodable validation request")
		a.json(w, http.StatusBadRequest, signage.Invalid([]string{issueBadRequest}))
		return
	}

	res, err := a.Validator.Validate(in)
	if err != nil {
		logger.Error().Err(err).Msg("validation failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal validation error")
		return
	}

	event := logger.Info().Bool("ok", res.OK()).Int("issues", len(res.Issues))
	if text, ok := in["text"].(string); ok {
		event = event.Str("text", preview(text, 20))
	}
	event.Msg("validation request")

	a.json(w, http.StatusOK, res)
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
