// Package mcp provides Model Context Protocol server implementation for the tile match bot.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for bot run operations
//   - Run-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_run: Create a new bot run with profile selection
//   - list_runs: List all active runs
//   - get_run: Get specific run details
//   - run_state: Get the current run snapshot
//   - observe: Submit a fresh board observation
//   - solve: Find the next removable pair
//   - report_outcome: Report an executed removal's outcome
//   - mark_rescanned: Acknowledge a performed full rescan
//   - reset_run: Reset run counters and history
//   - cycle_history: Retrieve cycle history with pagination
//   - list_configs: List available bot profiles
//   - bot_instructions: Get the full cycle protocol and rules
//
// Architecture:
//
// The Client is a thin proxy: every tool call is translated into a REST
// request against the API server, and the JSON response is rendered as
// human-readable text for the agent. The MCP layer holds no run state of
// its own.
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Run Management:
//
// All cycle tools take a run_id parameter. AI agents can drive multiple
// concurrent bot runs independently, each with its own profile, counters,
// and cycle history.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Drive the observe/solve/execute/report cycle autonomously
//   - Honor rescan requests and corroborate deadlocks
//   - Track run health through snapshots and cycle history
//   - Manage multiple bot runs in parallel
package mcp
