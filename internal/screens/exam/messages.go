package exam

import "time"

// timerTickMsg is sent every second to refresh the countdown and poll
// the time budget.
type timerTickMsg time.Time
