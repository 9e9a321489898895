package cloud

// Lifecycle status values reported by the DocumentDB control plane.
const (
	StatusAvailable = "available"
	StatusCreating  = "creating"
	StatusDeleting  = "deleting"
	StatusStopped   = "stopped"
	StatusFailed    = "failed"
)
