package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/tilebot/tilebot/game/engine"
	"github.com/tilebot/tilebot/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Tile Match Bot",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tile Match Bot - MCP Interface

This is a thin client that proxies all requests to the REST API server.

BOT OBJECTIVE:
Clear a tile-matching board by removing pairs of identical tiles whose
connecting path needs at most two turns. The caller observes the board,
asks for the next pair, executes the removal, and reports the outcome.

AVAILABLE TOOLS:
- create_run: Create a new bot run
- list_runs: List all active runs
- get_run: Get run details
- run_state: Get the current run snapshot
- observe: Submit a fresh board observation
- solve: Ask for the next removable pair
- report_outcome: Report whether the executed removal worked
- mark_rescanned: Acknowledge a performed full rescan
- reset_run: Reset run counters and history
- cycle_history: View past cycles
- list_configs: List available bot profiles
- bot_instructions: Get the full cycle protocol and rules

NOTE: The 'intent' parameter on observe/report_outcome serves as rubber
duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Run management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_run",
		Description: "Create a new bot run with optional profile selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "ID of the bot profile to use (optional)",
				},
			},
		},
	}, c.handleCreateRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List all active bot runs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get details of a specific run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	// Cycle operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "run_state",
		Description: "Get the current run snapshot (counters, flags, board shape)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleRunState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "observe",
		Description: "Submit a fresh board observation. The response says whether a full rescan is due before solving. A shape mismatch is rejected and counts as a cycle failure.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"board": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "integer"},
					},
					"description": "Rows x cols grid: 0=empty, -1=blocked, positive=tile class",
				},
				"confidence": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type":  "array",
						"items": map[string]interface{}{"type": "number"},
					},
					"description": "Per-cell classifier confidence in [0,1], same shape as board (optional, defaults to 1.0)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this observation (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"run_id", "board"},
		},
	}, c.handleObserve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "solve",
		Description: "Find the next removable pair on the last observed board. Requires a prior observe call.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleSolve)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "report_outcome",
		Description: "Report whether the executed removal worked. A success advances the move counter; a failure requests a full rescan for the next cycle.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"success": map[string]interface{}{
					"type":        "boolean",
					"description": "Whether the removal was executed and took effect",
				},
				"pair": map[string]interface{}{
					"type":        "object",
					"description": "The removed pair, required on success: {a:{row,col}, b:{row,col}}",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of what happened during execution (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"run_id", "success"},
		},
	}, c.handleReportOutcome)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "mark_rescanned",
		Description: "Acknowledge that a full board rescan was performed, anchoring the periodic cadence",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"reason": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"periodic", "low_confidence", "failure_or_mismatch", "no_pair"},
					"description": "Reason code from the observe response, or no_pair for a deadlock corroboration rescan",
				},
			},
			Required: []string{"run_id", "reason"},
		},
	}, c.handleMarkRescanned)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_run",
		Description: "Reset run counters and cycle history to initial state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleResetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "cycle_history",
		Description: "Get cycle history for a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleCycleHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available bot profiles",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bot_instructions",
		Description: "Get the full cycle protocol, pairing rules, and rescan policy",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleBotInstructions)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var run service.RunInfo
	err := c.apiCall("POST", "/api/runs", body, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created run: %s\nProfile: %s\n", run.ID, run.ConfigName)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int               `json:"count"`
		Runs  []service.RunInfo `json:"runs"`
	}

	err := c.apiCall("GET", "/api/runs", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Runs (%d):\n\n", response.Count)
	for _, r := range response.Runs {
		result += fmt.Sprintf("- %s (Profile: %s, Created: %s)\n",
			r.ID, r.ConfigName, r.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var run service.RunInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s", runID), nil, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRunInfo(&run)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleRunState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var snapshot engine.RunSnapshot
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/state", runID), nil, &snapshot)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSnapshot(&snapshot)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleObserve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	board, ok := convertBoard(args["board"])
	if !ok {
		return mcp.NewToolResultError("board must be an array of integer arrays"), nil
	}

	body := map[string]interface{}{
		"board": board,
	}
	if conf, ok := convertConfidence(args["confidence"]); ok {
		body["confidence"] = conf
	}

	var result service.ObserveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/observe", runID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatObserveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleSolve(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var result service.SolveResult
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/solve", runID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatSolveResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReportOutcome(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	success, _ := args["success"].(bool)
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]interface{}{
		"success": success,
	}
	if pair, ok := convertPair(args["pair"]); ok {
		body["pair"] = pair
	}

	var result service.OutcomeResult
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/outcome", runID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatOutcomeResult(success, &result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleMarkRescanned(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	reason, _ := args["reason"].(string)

	body := map[string]string{
		"reason": reason,
	}

	var response struct {
		Message  string           `json:"message"`
		RunState *engine.RunState `json:"run_state"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/rescanned", runID), body, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatRunState(response.RunState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleResetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var response struct {
		Message  string              `json:"message"`
		Snapshot *engine.RunSnapshot `json:"snapshot"`
	}

	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/reset", runID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatSnapshot(response.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleCycleHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/history%s", runID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatHistory(&history)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Profiles:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (id: %s)\n  %s\n  Grid: %dx%d\n\n",
			config.Name, config.ConfigID, config.Description, config.Rows, config.Cols)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleBotInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Tile Match Bot - Complete Instructions

BOT OBJECTIVE:
Clear the board by removing pairs of identical tiles. A pair is removable
only when a path of empty cells connects the two tiles using at most two
turns. The path may route around the outside edge of the board.

BOARD ENCODING:
• 0  - Empty cell (traversable by paths)
• -1 - Blocked cell (permanent obstacle, never traversable)
• 1+ - Tile class ID (two cells match only when their IDs are equal)

CYCLE PROTOCOL (one removal = one cycle):
1. observe - Submit the freshly captured board and per-cell confidence
2. Check the observe response:
   - rescan=true: perform a FULL board capture, call mark_rescanned with
     the given reason, then observe again with the fresh board
   - cleared=true: the board is empty, the run is done 🎉
3. solve - Ask for the next removable pair
   - no_pair with tiles remaining: the board is deadlocked; corroborate
     with one full rescan before trusting the verdict
4. Execute the removal in the real game (click both tiles)
5. report_outcome - success=true with the pair, or success=false

PAIRING RULES:
• Both cells must hold the same positive tile class
• The connecting path uses empty cells only (0), never blocked cells (-1)
• At most two direction changes along the path
• Paths may leave the board: the grid is treated as having a one-cell
  empty border all the way around

RESCAN POLICY:
The observe response tells you when a full rescan is due, with a reason:
• failure_or_mismatch - a previous cycle failed or the board shape changed
• low_confidence - some cell's classifier confidence fell below the floor
• periodic - the configured move cadence elapsed
Always call mark_rescanned after performing the rescan, otherwise the
same trigger fires again next cycle.

FAILURE HANDLING:
• A failed removal does NOT advance the move counter
• Consecutive failures are counted; the run stops when the configured
  limit is reached (check stopped in run_state)
• Any success resets the failure streak to zero

🤖 AI AGENTS - SUCCESS STRATEGIES:

⚠️ BOARD TRANSCRIPTION (MOST COMMON FAILURE POINT):
• Transcribe the board cell by cell, never by visual pattern
• Verify row and column counts match the profile before observing
• A shape mismatch is rejected and burns a failure - double-check first

🗺️ SYSTEMATIC PLAY:
• Trust the solver's pair; it scans row-major and is deterministic
• Report honest outcomes - lying about success corrupts the counters
• After a failure, expect and perform the requested full rescan
• Watch consecutive_failures in run_state; investigate before the stop
  threshold is reached

🔄 DEADLOCK HANDLING:
When solve returns no_pair with tiles still on the board:
1. Perform one corroborating full rescan
2. mark_rescanned with reason no_pair, observe the fresh board, solve again
3. If still no_pair, the board is genuinely deadlocked - stop the run

RUN MANAGEMENT:
• Multiple runs can be active simultaneously
• Each run has a unique 4-character ID
• Runs maintain independent counters, history, and profile
• reset_run starts the counters over without deleting the run

Remember: success requires faithful transcription, honest outcome
reporting, and acting on every rescan request. Good luck clearing the
board! 🀄`

	return mcp.NewToolResultText(instructions), nil
}

// Argument conversion helpers

func convertBoard(raw interface{}) (engine.Board, bool) {
	rows, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	board := make(engine.Board, 0, len(rows))
	for _, r := range rows {
		cells, ok := r.([]interface{})
		if !ok {
			return nil, false
		}
		row := make([]int, 0, len(cells))
		for _, c := range cells {
			v, ok := c.(float64)
			if !ok {
				return nil, false
			}
			row = append(row, int(v))
		}
		board = append(board, row)
	}
	return board, true
}

func convertConfidence(raw interface{}) (engine.ConfidenceMap, bool) {
	rows, ok := raw.([]interface{})
	if !ok {
		return nil, false
	}
	conf := make(engine.ConfidenceMap, 0, len(rows))
	for _, r := range rows {
		cells, ok := r.([]interface{})
		if !ok {
			return nil, false
		}
		row := make([]float64, 0, len(cells))
		for _, c := range cells {
			v, ok := c.(float64)
			if !ok {
				return nil, false
			}
			row = append(row, v)
		}
		conf = append(conf, row)
	}
	return conf, true
}

func convertPair(raw interface{}) (*engine.Pair, bool) {
	obj, ok := raw.(map[string]interface{})
	if !ok {
		return nil, false
	}
	cell := func(key string) (engine.Cell, bool) {
		c, ok := obj[key].(map[string]interface{})
		if !ok {
			return engine.Cell{}, false
		}
		row, rok := c["row"].(float64)
		col, cok := c["col"].(float64)
		if !rok || !cok {
			return engine.Cell{}, false
		}
		return engine.Cell{Row: int(row), Col: int(col)}, true
	}
	a, aok := cell("a")
	b, bok := cell("b")
	if !aok || !bok {
		return nil, false
	}
	return &engine.Pair{A: a, B: b}, true
}

// Formatting helpers

func formatRunInfo(run *service.RunInfo) string {
	return fmt.Sprintf("Run: %s\nProfile: %s\nCreated: %s\n\n%s",
		run.ID, run.ConfigName,
		run.CreatedAt.Format("2006-01-02 15:04:05"),
		formatRunState(run.RunState))
}

func formatRunState(state *engine.RunState) string {
	if state == nil {
		return "No run state available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Moves: %d | Failures: %d | Last event: %s\n",
		state.MoveCount, state.ConsecutiveFailures, state.LastEvent))
	b.WriteString(fmt.Sprintf("Last full rescan at move: %d\n", state.LastFullRescanMove))

	if state.RescanRequested {
		b.WriteString("⚠️ Full rescan requested for the next cycle\n")
	}
	if state.LastRescanReason != "" {
		b.WriteString(fmt.Sprintf("Last rescan reason: %s\n", state.LastRescanReason))
	}
	if state.LastPair != nil {
		p := state.LastPair
		b.WriteString(fmt.Sprintf("Last pair: (%d,%d)-(%d,%d)\n",
			p.A.Row, p.A.Col, p.B.Row, p.B.Col))
	}

	return b.String()
}

func formatSnapshot(snapshot *engine.RunSnapshot) string {
	if snapshot == nil {
		return "No snapshot available"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Profile: %s | Grid: %dx%d | Cycles: %d\n\n",
		snapshot.ConfigName, snapshot.Rows, snapshot.Cols, snapshot.TotalCycles))
	b.WriteString(formatRunState(&snapshot.State))

	if !snapshot.HasBoard {
		b.WriteString("\nNo board observed yet - call observe first\n")
	}
	if snapshot.BoardCleared {
		b.WriteString("\n🎉 BOARD CLEARED!")
	}
	if snapshot.Stopped {
		b.WriteString("\n🛑 RUN STOPPED (failure limit reached)")
	}

	return b.String()
}

func formatObserveResult(result *service.ObserveResult) string {
	var b strings.Builder

	if result.Accepted {
		b.WriteString("✓ Observation accepted\n")
	} else {
		b.WriteString("✗ Observation rejected\n")
	}

	if result.Rescan {
		b.WriteString(fmt.Sprintf("⚠️ Full rescan due (reason: %s) - rescan, mark_rescanned, then observe again\n", result.Reason))
	}
	if result.Cleared {
		b.WriteString("🎉 Board cleared!\n")
	}
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatRunState(result.RunState))
	return b.String()
}

func formatSolveResult(result *service.SolveResult) string {
	var b strings.Builder

	if result.Pair != nil {
		p := result.Pair
		b.WriteString(fmt.Sprintf("✓ Pair found: (%d,%d)-(%d,%d)\n", p.A.Row, p.A.Col, p.B.Row, p.B.Col))
		b.WriteString("Execute the removal, then call report_outcome with this pair.\n")
	} else if result.Cleared {
		b.WriteString("🎉 Board cleared - no tiles remain\n")
	} else {
		b.WriteString("✗ No removable pair found\n")
		b.WriteString("Tiles remain but none connect within two turns. Corroborate with a full rescan before treating the board as deadlocked.\n")
	}

	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatRunState(result.RunState))
	return b.String()
}

func formatOutcomeResult(success bool, result *service.OutcomeResult) string {
	var b strings.Builder

	if success {
		b.WriteString("✓ Move recorded\n")
	} else {
		b.WriteString("✗ Failure recorded\n")
	}

	if result.RescanRequested {
		b.WriteString("⚠️ Full rescan requested for the next cycle\n")
	}
	if result.Stopped {
		b.WriteString("🛑 Run stopped: consecutive failure limit reached\n")
	}
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatRunState(result.RunState))
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Cycle History (Page %d/%d) — Total: %d\n\n",
		history.Page, history.TotalPages, history.TotalCycles)

	for _, cycle := range history.Cycles {
		line := fmt.Sprintf("%d. %s", cycle.CycleNumber, cycle.Event)
		if cycle.Pair != nil {
			line += fmt.Sprintf(" (%d,%d)-(%d,%d)",
				cycle.Pair.A.Row, cycle.Pair.A.Col, cycle.Pair.B.Row, cycle.Pair.B.Col)
		}
		if cycle.Reason != "" {
			line += fmt.Sprintf(" reason=%s", cycle.Reason)
		}
		line += fmt.Sprintf(" [moves: %d, failures: %d]", cycle.MoveCount, cycle.Failures)
		result += line + "\n"
	}

	return result
}
