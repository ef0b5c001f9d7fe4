package render

import (
	"fmt"
	"strconv"
	"strings"

	"mail-route-service/internal/domain"
)

const (
	RouteSeparator  = "->"
	CenterSeparator = " "
	centerCell      = "  *"
)

// FormatRoute renders stops in visiting order, e.g. "1->3->2".
func FormatRoute(route domain.Route) string {
	parts := make([]string, 0, len(route))
	for _, p := range route {
		parts = append(parts, strconv.Itoa(int(p)))
	}
	return strings.Join(parts, RouteSeparator)
}

// FormatRoutes renders the routes file: a line of center ids, each followed by
// a separator, then one route per line.
func FormatRoutes(res *domain.PlanResult) string {
	var b strings.Builder
	for _, c := range res.Centers {
		b.WriteString(strconv.Itoa(int(c)))
		b.WriteString(CenterSeparator)
	}
	b.WriteByte('\n')
	for _, rp := range res.Routes {
		b.WriteString(FormatRoute(rp.Stops))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatWorld renders the grid with every cell labelled by its route index.
// Centers are drawn as "*".
func FormatWorld(res *domain.PlanResult) string {
	owner := res.RouteIndexByPoint()
	isCenter := make(map[domain.Point]struct{}, len(res.Centers))
	for _, c := range res.Centers {
		isCenter[c] = struct{}{}
	}

	var b strings.Builder
	for _, p := range res.Grid.Points() {
		if _, ok := isCenter[p]; ok {
			b.WriteString(centerCell)
		} else if idx, ok := owner[p]; ok {
			fmt.Fprintf(&b, "%3d", idx)
		} else {
			b.WriteString("  .")
		}
		if (int(p)+1)%res.Grid.Width == 0 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func FormatSummary(res *domain.PlanResult) string {
	return fmt.Sprintf("Total %d routes\nAverage Route Size: %.6g\n", res.RouteCount(), res.AverageRouteSize())
}
