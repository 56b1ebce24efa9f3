// Package validation provides input validation for convokit.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Both report failures as
// *errors.AppError with per-field details.
//
// # Struct Tag Validation
//
//	type Word struct {
//	    Start   float64 `json:"start" validate:"finite,gte=0"`
//	    Speaker string  `json:"speaker" validate:"required"`
//	}
//	err := validation.Validate(w)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Finite("start", w.Start).NotBefore("end", w.End, w.Start)
//	err := v.Validate()
package validation
