package session

import (
	"time"

	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/service"
)

// RunPersistence defines the interface for persisting runs
type RunPersistence interface {
	// Save persists a run to storage
	Save(run *service.Run) error

	// Load retrieves a run from storage by ID
	Load(id string) (*service.Run, error)

	// Delete removes a run from storage
	Delete(id string) error

	// ListAll returns all persisted run IDs
	ListAll() ([]string, error)

	// Exists checks if a run exists in storage
	Exists(id string) bool
}

// PersistedRunData represents the JSON structure for persisted runs. Only the
// run state and cycle history are stored; observations belong to a single
// cycle and are never written to disk.
type PersistedRunData struct {
	ID             string               `json:"id"`
	ConfigName     string               `json:"config_name"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	RunState       *engine.RunState     `json:"run_state"`
	CycleHistory   []engine.CycleRecord `json:"cycle_history,omitempty"`
}
