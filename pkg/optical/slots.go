package optical

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bashar267/optical-topology-or/pkg/roadm"
)

// SlotOverlaps reports whether the candidate slot [f-0.05, f+0.05] around
// freq intersects any existing media-channel slot on (degree, dir).
//
// A malformed candidate frequency reports no overlap: validation is
// deferred to the device's own constraint enforcement. Stored slots with
// unparsable bounds are skipped for the same reason.
func SlotOverlaps(cfg *roadm.Config, degree int, dir roadm.Direction, freq string) bool {
	newMin, newMax, ok := roadm.SlotBounds(freq)
	if !ok {
		return false
	}

	prefix := fmt.Sprintf("MC-TTP-DEG%d-%s-", degree, dir)
	for _, name := range cfg.InterfaceNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		intf := cfg.Interfaces[name]

		curMin, errMin := strconv.ParseFloat(intf.MinFreq, 64)
		curMax, errMax := strconv.ParseFloat(intf.MaxFreq, 64)
		if errMin != nil || errMax != nil {
			continue
		}

		if roadm.SlotsOverlap(newMin, newMax, curMin, curMax) {
			return true
		}
	}
	return false
}
