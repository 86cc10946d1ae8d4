// Package websocket provides WebSocket transport for watching bot runs.
//
// The websocket package implements:
//   - Real-time run snapshot broadcasting
//   - Run-aware WebSocket connections
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Outgoing messages are JSON-encoded Message values carrying the run ID, an
// event name, and either a full RunSnapshot ("run_update") or event-specific
// data. Incoming client messages are not processed; the read loop only keeps
// the connection alive.
//
// Run Integration:
//
// WebSocket connections are run-aware. Clients specify their run ID via
// query parameter (?run=abc1) when establishing the connection. Snapshot
// updates are broadcast only to clients watching the same run.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// After a cycle operation mutates a run:
//	hub.BroadcastToRun(runID, eng.Snapshot())
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive broadcasts
// simultaneously without blocking each other.
package websocket
