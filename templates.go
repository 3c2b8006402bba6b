package emailsig

import (
	"io/fs"

	"github.com/goliatone/go-emailsig/pkg/renderers/markup"
)

// EmbeddedTemplates exposes the built-in signature templates so callers can
// copy and extend them, then hand the result back through
// markup.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	fsys := markup.TemplatesFS()
	return fsys
}
