package templates

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

// ExportDocument is a standalone HTML file holding one chart. It loads no
// external resources so it can be opened offline.
func ExportDocument(title string, svg []byte, generatedAt time.Time) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		hw.text(title)
		hw.raw(`</title><style>body { font-family: system-ui, sans-serif; margin: 2rem; color: #2c3e50; } footer { color: #95a5a6; font-size: .8rem; }</style></head><body><h1>`)
		hw.text(title)
		hw.raw(`</h1><figure>`)
		hw.raw(string(svg))
		hw.raw(`</figure><footer>Generated `)
		hw.text(generatedAt.UTC().Format(time.RFC3339))
		hw.raw(`</footer></body></html>`)
		return hw.err
	})
}
