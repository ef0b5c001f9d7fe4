package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// PlanKey fingerprints every input that affects a plan. Planning is
// deterministic, so equal keys always describe equal route sets.
func PlanKey(req PlanDeliveriesRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%dx%d|%d,%d,%d,%d|",
		req.Mode,
		req.Grid.Width, req.Grid.Height,
		req.Policy.TravelUnitMinutes, req.Policy.LoadMinutes,
		req.Policy.SingleBudgetMinutes, req.Policy.LocalBudgetMinutes,
	)
	for i, p := range req.LocalCenters {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(p)))
	}

	return fmt.Sprintf("plan:%016x", xxhash.Sum64String(b.String()))
}
