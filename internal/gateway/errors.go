package gateway

import (
	"errors"

	"heart-of-colors/internal/render"
	"heart-of-colors/internal/theme"
)

type FriendlyError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *FriendlyError) Error() string {
	return e.Message
}

func (e *FriendlyError) Unwrap() error { return e.Cause }

func mapRenderError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, render.ErrInvalidPalette):
		return &FriendlyError{Code: "INVALID_PALETTE", Message: "Das aktuelle Thema enthält keine Farben.", Cause: err}
	case errors.Is(err, render.ErrInvalidColor):
		return &FriendlyError{Code: "INVALID_COLOR", Message: "Das aktuelle Thema enthält eine ungültige Farbe.", Cause: err}
	case errors.Is(err, render.ErrInvalidDimension):
		return &FriendlyError{Code: "INVALID_DIMENSION", Message: "Zellgröße oder Abstand sind ungültig.", Cause: err}
	case errors.Is(err, theme.ErrCursorOutOfRange), errors.Is(err, theme.ErrUnknownTheme):
		return &FriendlyError{Code: "THEME_NOT_FOUND", Message: "Das gewählte Thema existiert nicht.", Cause: err}
	default:
		return &FriendlyError{Code: "RENDER_FAILED", Message: "Das Herz konnte nicht gezeichnet werden.", Cause: err}
	}
}
