package hydrogr

import "errors"

// Configuration errors. They are returned before a run starts and are never
// recovered silently.
var (
	// ErrVariant is returned for an unknown model name.
	ErrVariant = errors.New("hydrogr: unknown model variant")
	// ErrParameterSet is returned when parameter names or count do not match the variant.
	ErrParameterSet = errors.New("hydrogr: malformed parameter set")
	// ErrStateField is returned when a state mapping lacks a required key or a buffer has the wrong length.
	ErrStateField = errors.New("hydrogr: malformed state")
	// ErrStateRange is returned for store fill fractions outside [0, 1].
	ErrStateRange = errors.New("hydrogr: state fill fraction out of range")
	// ErrFrequency is returned when the input series frequency does not suit the variant.
	ErrFrequency = errors.New("hydrogr: input frequency mismatch")
	// ErrLength is returned when precipitation and evapotranspiration series differ in length.
	ErrLength = errors.New("hydrogr: input series length mismatch")
)
