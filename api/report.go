package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fiscalsim/domain/core"
	"fiscalsim/domain/fiscal"
	"fiscalsim/domain/policy"
)

// handleScenarioReport projects a stored scenario and returns a readable
// HTML summary rendered from markdown. The numbers are the same as the
// JSON endpoints; this is a convenience surface for tooling that wants a
// quick human-readable fragment.
func (s *Server) handleScenarioReport(w http.ResponseWriter, r *http.Request) {
	id := core.ScenarioID(chi.URLParam(r, "id"))
	scenario, err := s.service.GetScenario(r.Context(), id)
	if err != nil {
		s.respondError(w, err)
		return
	}
	result, err := s.service.Project(r.Context(), *scenario)
	if err != nil {
		s.respondError(w, err)
		return
	}

	md := renderReportMarkdown(scenario, result)

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	html := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func renderReportMarkdown(scenario *policy.Scenario, result *fiscal.ProjectionResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", scenario.Description)
	}
	fmt.Fprintf(&b, "Projection over %d years from %d. Cumulative surplus: %.1f billion.\n\n",
		len(result.Years), result.StartYear, result.CumulativeSurplus())

	b.WriteString("| Year | GDP | Revenue | Net Spending | Surplus |\n")
	b.WriteString("|------|-----|---------|--------------|---------|\n")
	for _, y := range result.Years {
		fmt.Fprintf(&b, "| %d | %.0f | %.1f | %.1f | %.1f |\n",
			y.Year, y.GDP, y.Revenue.Total, y.Spending.NetSpending, y.Surplus)
	}
	b.WriteString("\n")

	if triggered := result.TriggeredYears(); len(triggered) > 0 {
		b.WriteString("## Circuit breakers\n\n")
		for _, y := range result.Years {
			for _, ev := range y.CircuitBreakers {
				fmt.Fprintf(&b, "- **%d**: %s\n", y.Year, ev.Message)
			}
		}
		b.WriteString("\n")
	}

	var warnings int
	for _, y := range result.Years {
		warnings += len(y.Warnings)
	}
	if warnings > 0 {
		fmt.Fprintf(&b, "## Warnings\n\n%d diagnostics were emitted during this run.\n\n", warnings)
		for _, y := range result.Years {
			for _, warn := range y.Warnings {
				if warn.Severity == fiscal.SeverityUser {
					fmt.Fprintf(&b, "- **%d**: %s\n", warn.Year, warn.Message)
				}
			}
		}
	}

	return b.String()
}
