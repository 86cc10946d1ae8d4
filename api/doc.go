// Package api provides the HTTP REST API for the tile match bot.
//
// The api package implements:
//   - RESTful endpoints for run and cycle operations
//   - Run management endpoints
//   - Configuration listing, loading, and saving
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Run Management:
//   - POST /api/runs - Create new run
//   - GET /api/runs - List all runs (sort, order, limit query params)
//   - GET /api/runs/{id} - Get specific run
//   - DELETE /api/runs/{id} - Delete run
//
// Cycle Operations:
//   - GET /api/runs/{id}/state - Get run snapshot
//   - POST /api/runs/{id}/observe - Submit a board observation
//   - POST /api/runs/{id}/solve - Find the next connectable pair
//   - POST /api/runs/{id}/outcome - Report an executed cycle's outcome
//   - POST /api/runs/{id}/rescanned - Acknowledge a performed full rescan
//   - POST /api/runs/{id}/reset - Reset the run state
//   - GET /api/runs/{id}/history - Get cycle history with pagination
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a configuration
//
// Observe (POST /api/runs/{id}/observe)
//
//	Request:  { "board": [[...]], "confidence": [[...]] }
//	Response: { accepted, rescan, reason, cleared, run_state, message? }
//
// The confidence map is optional; when omitted every cell is treated as
// fully certain.
//
// A rejected observation (shape mismatch) returns 200 with accepted=false:
// the rejection is a recorded cycle failure, not a transport error.
//
// Outcome (POST /api/runs/{id}/outcome)
//
//	Request:  { "success": true|false, "pair": {a:{row,col}, b:{row,col}} }
//	Response: { run_state, stopped, rescan_requested, message? }
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
package api
