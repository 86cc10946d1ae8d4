// Package service provides the business logic layer for the tile match bot.
//
// The service package implements:
//   - Multi-run bot management
//   - Configuration management and loading
//   - Observation, solve, and outcome processing
//   - Run lifecycle management
//   - Cycle history tracking
//
// Core Interfaces:
//
// BotService is the main service interface providing high-level run operations.
// RunManager handles run creation, retrieval, and lifecycle.
// ConfigManager manages bot configuration loading and validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the run engine, providing run isolation, configuration management, and
// business logic orchestration. Each run maintains its own engine instance
// with independent state; observations belong to a single cycle and are never
// shared across runs.
//
// Usage:
//
//	runMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	botService := service.NewBotService(runMgr, configMgr)
//
//	// Create a new run
//	runInfo, err := botService.CreateRun(ctx, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Drive one cycle
//	obs, err := botService.Observe(ctx, runInfo.ID, board, confidence)
//	sol, err := botService.Solve(ctx, runInfo.ID)
//
// Run Management:
//
// Runs are identified by unique 4-character IDs and maintain independent
// state machines. Multiple runs can proceed concurrently with different
// configurations. Runs track creation time, last access time, and cycle
// history for analytics and debugging.
package service
