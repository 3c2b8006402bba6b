package signature

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig tags every validation failure so callers can match with
// errors.Is regardless of which field failed.
var ErrInvalidConfig = errors.New("signature: invalid config")

// FieldError reports a rejected value for a single configuration key.
type FieldError struct {
	Field   string
	Value   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("signature: %s %q: %s", e.Field, e.Value, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks enum fields. Free-form values (colors, fonts, URLs) carry
// no contract and are never rejected.
func Validate(cfg Config) error {
	var errs []error

	switch cfg.LogoPosition {
	case LogoTop, LogoLeft:
	default:
		errs = append(errs, &FieldError{Field: "logo_position", Value: string(cfg.LogoPosition), Message: "expected top or left"})
	}

	known := false
	for _, style := range SeparatorStyles() {
		if cfg.SeparatorStyle == style {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, &FieldError{Field: "separator_style", Value: string(cfg.SeparatorStyle), Message: "expected dot, pipe, slash, dash, none or custom"})
	}

	switch cfg.Direction {
	case DirectionLTR, DirectionRTL, DirectionAuto:
	default:
		errs = append(errs, &FieldError{Field: "direction", Value: string(cfg.Direction), Message: "expected ltr, rtl or auto"})
	}

	if cfg.FontSize < 0 {
		errs = append(errs, &FieldError{Field: "font_size", Value: fmt.Sprint(cfg.FontSize), Message: "must not be negative"})
	}
	if cfg.Spacing < 0 {
		errs = append(errs, &FieldError{Field: "spacing", Value: fmt.Sprint(cfg.Spacing), Message: "must not be negative"})
	}

	return errors.Join(errs...)
}
