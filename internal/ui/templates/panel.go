package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ChartPanel wraps an SVG chart in the element the page expects at id.
func ChartPanel(id, class string, svg []byte) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div id="`)
		hw.text(id)
		hw.raw(`" class="`)
		hw.text(class)
		hw.raw(`">`)
		hw.raw(string(svg))
		hw.raw(`</div>`)
		return hw.err
	})
}

// EmptyPanel stands in for a chart with nothing to plot.
func EmptyPanel(id, class, message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<div id="`)
		hw.text(id)
		hw.raw(`" class="`)
		hw.text(class)
		hw.raw(`"><p class="empty">`)
		hw.text(message)
		hw.raw(`</p></div>`)
		return hw.err
	})
}
