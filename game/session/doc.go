// Package session provides bot run lifecycle management with optional
// file-based persistence.
//
// The session package implements:
//   - Run creation with generated 4-character IDs
//   - Case-insensitive run lookup
//   - In-memory caching with lazy loading from persistence
//   - JSON file persistence of run state and cycle history
//   - Expired run cleanup
//
// Persistence stores only what survives a restart: the run's counters, flags,
// and cycle history. Board observations are deliberately not persisted; a
// restored run must be fed a fresh observation before it can solve.
//
// Usage:
//
//	persistence, err := session.NewFilePersistence("runs", configMgr)
//	if err != nil {
//		log.Fatal(err)
//	}
//	manager := session.NewManagerWithPersistence(persistence)
//	if err := manager.LoadPersistedRuns(); err != nil {
//		log.Printf("Warning: %v", err)
//	}
package session
