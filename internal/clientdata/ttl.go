package clientdata

import "time"

// StaleGrace is how long expired rows are kept as a fallback for failed
// lookups before the cleanup job removes them.
const StaleGrace = 7 * 24 * time.Hour
