// Package config provides bot profile management for the tile match bot.
//
// The config package handles:
//   - Loading bot profiles from JSON files
//   - Profile validation and verification
//   - Default profile management
//   - Profile discovery and listing
//
// Profile Format:
//
// Bot profiles are stored as JSON files in the configs directory.
// Each profile defines:
//   - Board region of interest in screen coordinates (board_x/y/w/h)
//   - Logical grid dimensions (rows, cols)
//   - Classifier thresholds (match_threshold, min_margin_to_second_best,
//     min_cell_confidence)
//   - Timing knobs (click_pause_ms, post_click_wait_ms)
//   - Run policy (full_rescan_every_n_moves, max_consecutive_failures)
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load a specific profile
//	botConfig, err := manager.LoadConfig("fast")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get the default profile
//	defaultConfig := manager.GetDefault()
//
//	// List available profiles
//	configs, err := manager.ListConfigs()
//
// Defaults:
//
// The manager prefers default.json, falls back to the first valid profile in
// the directory, and finally to the built-in engine.DefaultBotConfig() when
// the directory holds no usable profile. Loaded profiles are cached; call
// RefreshCache to pick up edits made on disk.
package config
