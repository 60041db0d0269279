// Package orderform exposes the embedded page templates and browser assets so
// applications can serve or extend them without importing the renderer
// packages directly.
package orderform

import (
	"io/fs"

	"github.com/goliatone/go-orderform/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// AssetsFS exposes the stylesheet and the change runtime script.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(orderform.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
