package cli

import (
	"fmt"
	"time"
)

// FormatElapsed renders a duration as the badge readout, minutes and
// seconds only.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("\U0001F552 %dm %ds", m, s)
}
