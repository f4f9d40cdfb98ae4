// Package templates holds the page layouts and HTML fragments served to the
// browser. Components implement templ.Component so pages and SSE fragments
// render the same way.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f6fa; color: #2c3e50; }
header { background: #2c3e50; color: #fff; padding: 1rem 2rem; }
header a { color: #ecf0f1; }
main { display: grid; grid-template-columns: 260px 1fr; gap: 1.5rem; padding: 1.5rem 2rem; }
.controls { background: #fff; border-radius: 8px; padding: 1rem; align-self: start; }
.controls label { display: block; font-weight: 600; margin: 1rem 0 .25rem; }
.controls select { width: 100%; min-height: 6rem; }
.controls input[type=range] { width: 100%; }
.summary { display: flex; gap: 2rem; margin-bottom: 1rem; }
.summary strong { display: block; font-size: 1.4rem; }
.charts { display: grid; grid-template-columns: 2fr 1fr; gap: 1rem; }
.panel { background: #fff; border-radius: 8px; padding: .5rem; overflow: hidden; }
.panel.wide { grid-column: 1 / -1; }
.empty { color: #95a5a6; padding: 4rem 0; text-align: center; }
.modern-table { width: 100%; border-collapse: collapse; background: #fff; font-size: .9rem; }
.modern-table th, .modern-table td { padding: .4rem .6rem; border-bottom: 1px solid #ecf0f1; text-align: left; }
.sign-Positive { color: #2ecc71; }
.sign-Negative { color: #e74c3c; }
.dashboards { list-style: none; padding: 0; }
.dashboards li { background: #fff; border-radius: 8px; margin: .75rem 0; padding: 1rem; }
`

// htmlWriter keeps the first write error so components can emit markup
// without checking every call.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err != nil {
		return
	}
	_, hw.err = io.WriteString(hw.w, s)
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

func (hw *htmlWriter) component(ctx context.Context, c templ.Component) {
	if hw.err != nil {
		return
	}
	hw.err = c.Render(ctx, hw.w)
}

// Layout wraps body in the shared page chrome.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(`</title><script type="module" src="` + datastarScript + `"></script>`)
		hw.raw(`<style>` + stylesheet + `</style></head>`)
		hw.component(ctx, body)
		hw.raw(`</html>`)
		return hw.err
	})
}
