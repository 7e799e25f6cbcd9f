// errors.go — Typed failures for the render pipeline.
//
// Each stage of the pipeline reports its own error kind so the HTTP layer
// can separate client faults (validation) from server faults (fonts, icon,
// composition) without string matching. Font resolution errors live in
// pkg/fontcache and pass through unchanged.
package card

import "fmt"

// ValidationError reports a malformed or missing request field. Validation
// runs before any rendering work, so a rejected request performs no I/O.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// IconLoadError reports an icon URL that was unreachable or undecodable.
type IconLoadError struct {
	URL string
	Err error
}

func (e *IconLoadError) Error() string {
	return fmt.Sprintf("load icon %s: %v", e.URL, e.Err)
}

func (e *IconLoadError) Unwrap() error { return e.Err }

// RenderError wraps any other failure during composition or encoding.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render card: " + e.Err.Error() }

func (e *RenderError) Unwrap() error { return e.Err }
