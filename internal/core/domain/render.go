package domain

// RenderRequest holds the render options of an icon as given by a user,
// through command flags or query parameters.
type RenderRequest struct {
	Width  string
	Height string
	Flip   string
	Rotate string
	Inline bool
	// Box adds an invisible rectangle covering the viewBox, so editors keep the icon bounds.
	Box bool
}
