// Package mcp provides an MCP (Model Context Protocol) server for cq.
// This allows AI agents to run coverage analysis and commit tooling through
// MCP tools instead of CLI commands.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/covtools/cq/internal/changeset"
	"github.com/covtools/cq/internal/config"
	"github.com/covtools/cq/internal/conventional"
	"github.com/covtools/cq/internal/diff"
	"github.com/covtools/cq/internal/jacoco"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server with cq-specific functionality
type Server struct {
	mcpServer    *server.MCPServer
	cfg          *config.Config
	workDir      string
	tools        map[string]bool
	lastActivity time.Time
	timeout      time.Duration
	mu           sync.RWMutex
}

// Config holds server configuration
type Config struct {
	Tools   []string      // Which tools to expose (empty = all)
	Timeout time.Duration // Inactivity timeout (0 = no timeout)
	WorkDir string        // Working directory for git operations (empty = current)
}

// DefaultTools is the default set of tools to expose
var DefaultTools = []string{"cq_coverage", "cq_split", "cq_message", "cq_check"}

// AllTools lists all available tools
var AllTools = []string{"cq_coverage", "cq_split", "cq_message", "cq_check"}

// New creates a new MCP server for cq
func New(cfg Config) (*Server, error) {
	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = "."
	}

	// Load .cq config; defaults apply when no config file exists
	appCfg, err := config.Load(workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Create MCP server
	mcpServer := server.NewMCPServer(
		"cq",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s := &Server{
		mcpServer:    mcpServer,
		cfg:          appCfg,
		workDir:      workDir,
		tools:        make(map[string]bool),
		lastActivity: time.Now(),
		timeout:      cfg.Timeout,
	}

	// Determine which tools to register
	toolsToRegister := cfg.Tools
	if len(toolsToRegister) == 0 {
		toolsToRegister = DefaultTools
	}

	// Register tools
	for _, toolName := range toolsToRegister {
		if err := s.registerTool(toolName); err != nil {
			return nil, fmt.Errorf("failed to register tool %s: %w", toolName, err)
		}
		s.tools[toolName] = true
	}

	return s, nil
}

// registerTool registers a single tool with the MCP server
func (s *Server) registerTool(name string) error {
	switch name {
	case "cq_coverage":
		return s.registerCoverageTool()
	case "cq_split":
		return s.registerSplitTool()
	case "cq_message":
		return s.registerMessageTool()
	case "cq_check":
		return s.registerCheckTool()
	default:
		return fmt.Errorf("unknown tool: %s", name)
	}
}

// ServeStdio starts the server using stdio transport
func (s *Server) ServeStdio() error {
	// Start timeout checker if timeout is set
	if s.timeout > 0 {
		go s.timeoutChecker()
	}

	return server.ServeStdio(s.mcpServer)
}

// timeoutChecker monitors for inactivity and exits if timeout exceeded
func (s *Server) timeoutChecker() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.RLock()
		elapsed := time.Since(s.lastActivity)
		s.mu.RUnlock()

		if elapsed > s.timeout {
			fmt.Fprintf(os.Stderr, "cq serve: timeout after %v of inactivity\n", s.timeout)
			os.Exit(0)
		}
	}
}

// updateActivity updates the last activity timestamp
func (s *Server) updateActivity() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// WorkDir returns the directory the server operates on.
func (s *Server) WorkDir() string {
	return s.workDir
}

// Close releases server resources. The server holds no persistent state, so
// this only exists to give callers a uniform shutdown path.
func (s *Server) Close() error {
	return nil
}

// ListTools returns the list of registered tools
func (s *Server) ListTools() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tools := make([]string, 0, len(s.tools))
	for t := range s.tools {
		tools = append(tools, t)
	}
	return tools
}

// ToolSchema describes a tool's name, description, and parameters.
type ToolSchema struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Parameters  []ParameterSchema `json:"parameters" yaml:"parameters"`
}

// ParameterSchema describes a single tool parameter.
type ParameterSchema struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required" yaml:"required"`
}

// toolSchemaRegistry holds the schema definitions for all tools.
// These mirror the mcp.NewTool() definitions in the register*Tool() functions.
var toolSchemaRegistry = map[string]ToolSchema{
	"cq_coverage": {
		Name:        "cq_coverage",
		Description: "Analyze a JaCoCo HTML coverage report. Returns missed branches and uncovered lines per source file.",
		Parameters: []ParameterSchema{
			{Name: "path", Type: "string", Description: "Report directory, or a zip/7z archive containing the report", Required: true},
			{Name: "workers", Type: "number", Description: "Concurrent page scanners (default: one per CPU)"},
		},
	},
	"cq_split": {
		Name:        "cq_split",
		Description: "Propose a split of the staged changes into focused commits, grouped by file category and component.",
		Parameters: []ParameterSchema{
			{Name: "max_size", Type: "number", Description: "Maximum lines per commit before a split is suggested (default: 200)"},
			{Name: "complexity_threshold", Type: "number", Description: "Complexity score threshold before a split is suggested (default: 50)"},
		},
	},
	"cq_message": {
		Name:        "cq_message",
		Description: "Build a formatted conventional commit message from its parts.",
		Parameters: []ParameterSchema{
			{Name: "subject", Type: "string", Description: "One-line summary of the change", Required: true},
			{Name: "type", Type: "string", Description: "Commit type: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert (default: feat)"},
			{Name: "scope", Type: "string", Description: "Optional scope, e.g. the affected component"},
			{Name: "body", Type: "string", Description: "Optional long description, wrapped at 72 columns"},
			{Name: "breaking", Type: "boolean", Description: "Mark the commit as a breaking change"},
			{Name: "breaking_description", Type: "string", Description: "Text for the BREAKING CHANGE paragraph"},
		},
	},
	"cq_check": {
		Name:        "cq_check",
		Description: "Validate a commit message against the conventional commit format and style rules.",
		Parameters: []ParameterSchema{
			{Name: "message", Type: "string", Description: "Full commit message to check", Required: true},
		},
	},
}

// GetToolSchemas returns schemas for all registered tools.
func (s *Server) GetToolSchemas() []ToolSchema {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schemas := make([]ToolSchema, 0, len(s.tools))
	for name := range s.tools {
		if schema, ok := toolSchemaRegistry[name]; ok {
			schemas = append(schemas, schema)
		}
	}
	return schemas
}

// CallTool dispatches a tool call by name with the given arguments.
// Returns the JSON result string or an error.
func (s *Server) CallTool(name string, args map[string]interface{}) (string, error) {
	s.mu.RLock()
	registered := s.tools[name]
	s.mu.RUnlock()

	if !registered {
		return "", fmt.Errorf("unknown tool: %s (run 'cq call --list' to see available tools)", name)
	}

	switch name {
	case "cq_coverage":
		path, _ := args["path"].(string)
		if path == "" {
			return "", fmt.Errorf("path parameter is required")
		}
		workers := 0
		if w, ok := args["workers"].(float64); ok {
			workers = int(w)
		}
		return s.executeCoverage(context.Background(), path, workers)

	case "cq_split":
		maxSize := 0
		if m, ok := args["max_size"].(float64); ok {
			maxSize = int(m)
		}
		threshold := 0
		if c, ok := args["complexity_threshold"].(float64); ok {
			threshold = int(c)
		}
		return s.executeSplit(maxSize, threshold)

	case "cq_message":
		subject, _ := args["subject"].(string)
		if subject == "" {
			return "", fmt.Errorf("subject parameter is required")
		}
		typeStr, _ := args["type"].(string)
		scope, _ := args["scope"].(string)
		body, _ := args["body"].(string)
		breaking, _ := args["breaking"].(bool)
		breakingDesc, _ := args["breaking_description"].(string)
		return s.executeMessage(typeStr, scope, subject, body, breaking, breakingDesc)

	case "cq_check":
		message, _ := args["message"].(string)
		if message == "" {
			return "", fmt.Errorf("message parameter is required")
		}
		return s.executeCheck(message)

	default:
		return "", fmt.Errorf("unknown tool: %s", name)
	}
}

// registerCoverageTool registers the cq_coverage tool
func (s *Server) registerCoverageTool() error {
	tool := mcp.NewTool("cq_coverage",
		mcp.WithDescription("Analyze a JaCoCo HTML coverage report. Returns missed branches and uncovered lines per source file."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Report directory, or a zip/7z archive containing the report"),
		),
		mcp.WithNumber("workers",
			mcp.Description("Concurrent page scanners (default: one per CPU)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleCoverage)
	return nil
}

// registerSplitTool registers the cq_split tool
func (s *Server) registerSplitTool() error {
	tool := mcp.NewTool("cq_split",
		mcp.WithDescription("Propose a split of the staged changes into focused commits, grouped by file category and component."),
		mcp.WithNumber("max_size",
			mcp.Description("Maximum lines per commit before a split is suggested (default: 200)"),
		),
		mcp.WithNumber("complexity_threshold",
			mcp.Description("Complexity score threshold before a split is suggested (default: 50)"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleSplit)
	return nil
}

// registerMessageTool registers the cq_message tool
func (s *Server) registerMessageTool() error {
	tool := mcp.NewTool("cq_message",
		mcp.WithDescription("Build a formatted conventional commit message from its parts."),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("One-line summary of the change"),
		),
		mcp.WithString("type",
			mcp.Description("Commit type: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert (default: feat)"),
		),
		mcp.WithString("scope",
			mcp.Description("Optional scope, e.g. the affected component"),
		),
		mcp.WithString("body",
			mcp.Description("Optional long description, wrapped at 72 columns"),
		),
		mcp.WithBoolean("breaking",
			mcp.Description("Mark the commit as a breaking change"),
		),
		mcp.WithString("breaking_description",
			mcp.Description("Text for the BREAKING CHANGE paragraph"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleMessage)
	return nil
}

// registerCheckTool registers the cq_check tool
func (s *Server) registerCheckTool() error {
	tool := mcp.NewTool("cq_check",
		mcp.WithDescription("Validate a commit message against the conventional commit format and style rules."),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Full commit message to check"),
		),
	)

	s.mcpServer.AddTool(tool, s.handleCheck)
	return nil
}

// Tool handlers

func (s *Server) handleCoverage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return mcp.NewToolResultError("path parameter is required"), nil
	}

	workers := 0
	if w, ok := args["workers"].(float64); ok {
		workers = int(w)
	}

	result, err := s.executeCoverage(ctx, path, workers)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleSplit(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	maxSize := 0
	if m, ok := args["max_size"].(float64); ok {
		maxSize = int(m)
	}

	threshold := 0
	if c, ok := args["complexity_threshold"].(float64); ok {
		threshold = int(c)
	}

	result, err := s.executeSplit(maxSize, threshold)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleMessage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	subject, ok := args["subject"].(string)
	if !ok || subject == "" {
		return mcp.NewToolResultError("subject parameter is required"), nil
	}

	typeStr, _ := args["type"].(string)
	scope, _ := args["scope"].(string)
	body, _ := args["body"].(string)
	breaking, _ := args["breaking"].(bool)
	breakingDesc, _ := args["breaking_description"].(string)

	result, err := s.executeMessage(typeStr, scope, subject, body, breaking, breakingDesc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

func (s *Server) handleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.updateActivity()

	args := req.GetArguments()
	message, ok := args["message"].(string)
	if !ok || message == "" {
		return mcp.NewToolResultError("message parameter is required"), nil
	}

	result, err := s.executeCheck(message)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(result), nil
}

// Execution functions (implementations)

func (s *Server) executeCoverage(ctx context.Context, path string, workers int) (string, error) {
	if workers <= 0 {
		workers = s.cfg.Analysis.Workers
	}

	analyzer := &jacoco.Analyzer{
		SevenZipPath: s.cfg.Analysis.SevenZipPath,
		Workers:      workers,
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		analyzer.ReportDir = path
	} else {
		analyzer.ArchivePath = path
	}

	result, err := analyzer.Analyze(ctx)
	if err != nil {
		return "", fmt.Errorf("coverage analysis failed: %w", err)
	}

	return toJSON(jacoco.BuildExport(result))
}

func (s *Server) executeSplit(maxSize, complexityThreshold int) (string, error) {
	gd, err := diff.NewGitDiff(s.workDir)
	if err != nil {
		return "", err
	}

	staged, err := gd.GetStagedChanges()
	if err != nil {
		return "", fmt.Errorf("failed to read staged changes: %w", err)
	}
	if staged.IsEmpty() {
		return "", fmt.Errorf("no staged changes: stage files with 'git add' first")
	}

	splitter := changeset.NewSplitter()
	splitter.MaxCommitSize = s.cfg.Split.MaxCommitSize
	splitter.ComplexityThreshold = s.cfg.Split.ComplexityThreshold
	if maxSize > 0 {
		splitter.MaxCommitSize = maxSize
	}
	if complexityThreshold > 0 {
		splitter.ComplexityThreshold = complexityThreshold
	}

	metrics := diff.ComputeMetrics(staged)
	proposal := splitter.Analyze(staged, metrics)

	return toJSON(proposal)
}

func (s *Server) executeMessage(typeStr, scope, subject, body string, breaking bool, breakingDesc string) (string, error) {
	commitType := conventional.TypeFeat
	if typeStr != "" {
		parsed, err := conventional.ParseCommitType(typeStr)
		if err != nil {
			return "", err
		}
		commitType = parsed
	}

	message := conventional.CreateMessage(commitType, subject, conventional.MessageOptions{
		Scope:               scope,
		Body:                body,
		Breaking:            breaking,
		BreakingDescription: breakingDesc,
	})

	out := map[string]interface{}{
		"message": message,
	}
	if commit, err := conventional.Parse(message); err == nil {
		valid, problems := commit.Validate()
		if problems == nil {
			problems = []string{}
		}
		out["valid"] = valid
		out["errors"] = problems
	}

	return toJSON(out)
}

func (s *Server) executeCheck(message string) (string, error) {
	commit, err := conventional.Parse(message)
	if err != nil {
		return toJSON(map[string]interface{}{
			"valid":  false,
			"errors": []string{err.Error()},
		})
	}

	valid, problems := commit.Validate()
	if problems == nil {
		problems = []string{}
	}

	return toJSON(map[string]interface{}{
		"valid":  valid,
		"errors": problems,
		"commit": commit,
	})
}

// Helper functions

func toJSON(v interface{}) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
