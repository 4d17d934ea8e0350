package browser

import "fmt"

// Zone ID constants for mouse click detection in the browser.
// Uses bubblezone for click detection on pinned band entries.
// zoneBandPrefix is the prefix for pinned band entry zone IDs.
const zoneBandPrefix = "browser-band:"

// makeBandZoneID creates a zone ID for a pinned band entry.
func makeBandZoneID(index int) string {
	return fmt.Sprintf("%s%d", zoneBandPrefix, index)
}
