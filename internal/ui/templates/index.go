package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

type DashboardLink struct {
	Name    string
	Title   string
	Records int
}

func Index(dashboards []DashboardLink) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := &htmlWriter{w: w}
		hw.raw(`<body><header><h1>Sales Dashboards</h1></header><section style="padding: 1.5rem 2rem">`)
		hw.raw(`<ul class="dashboards">`)
		for _, d := range dashboards {
			hw.raw(`<li><a href="/dashboards/`)
			hw.text(d.Name)
			hw.raw(`">`)
			hw.text(d.Title)
			hw.raw(`</a> <span>`)
			hw.text(strconv.Itoa(d.Records))
			hw.raw(` synthetic records</span></li>`)
		}
		hw.raw(`</ul></section></body>`)
		return hw.err
	})
	return Layout("Sales Dashboards", body)
}
