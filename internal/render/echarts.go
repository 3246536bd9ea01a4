package render

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"graphstudio/internal/domain"
)

const (
	nodeSymbolSize = 36
	pageWidth      = "1200px"
	pageHeight     = "800px"
)

// HTML writes a standalone page drawing the snapshot with its current
// highlights. Nodes keep their canvas positions when every node has one;
// otherwise a force layout places them.
func HTML(w io.Writer, snap *domain.Snapshot, title string) error {
	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     pageWidth,
			Height:    pageHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	layout := "none"
	nodes := make([]opts.GraphNode, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		node := opts.GraphNode{
			Name:       n.ID,
			Symbol:     "circle",
			SymbolSize: nodeSymbolSize,
			ItemStyle: &opts.ItemStyle{
				Color:       n.Style.Background,
				BorderColor: n.Style.Border,
				BorderWidth: 2,
			},
		}
		if n.Position != nil {
			node.X, node.Y = float32(n.Position.X), float32(n.Position.Y)
		} else {
			layout = "force"
		}
		nodes = append(nodes, node)
	}

	links := make([]opts.GraphLink, 0, len(snap.Edges))
	for _, e := range snap.Edges {
		links = append(links, opts.GraphLink{
			Source: e.From,
			Target: e.To,
			Label:  &opts.EdgeLabel{Show: opts.Bool(true), Formatter: e.Label},
			LineStyle: &opts.LineStyle{
				Color: e.Style.Color,
				Width: float32(e.Style.Width),
			},
		})
	}

	chart := opts.GraphChart{
		Layout:    layout,
		Roam:      opts.Bool(true),
		Draggable: opts.Bool(true),
	}
	if layout == "force" {
		chart.Force = &opts.GraphForce{Repulsion: 800, EdgeLength: 120}
	}
	if snap.IsDirected {
		chart.EdgeSymbol = []string{"none", "arrow"}
		chart.EdgeSymbolSize = 10
	}

	graph.AddSeries("graph", nodes, links,
		charts.WithGraphChartOpts(chart),
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}),
	)
	return graph.Render(w)
}
