package render

import (
	"context"
)

// Renderer turns a View into bytes (an HTML page, terminal text, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View) ([]byte, error)
}
