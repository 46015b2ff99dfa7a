package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/cardprep/internal/imaging"
	"github.com/ironsheep/cardprep/internal/runner"
	"github.com/ironsheep/cardprep/internal/transform"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "card_list", "card_transform").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return errorResponse(req.ID, codeToolError, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "card_list":
		return s.handleCardList(args)
	case "card_transform":
		return s.handleCardTransform(args)
	case "card_dimensions":
		return s.handleCardDimensions(args)
	case "card_sample_color":
		return s.handleCardSampleColor(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
// A nil data is omitted from the response.
func errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Directory Handlers ===

type cardListArgs struct {
	Dir string `json:"dir"`
}

// CardEntry is one image in a card_list result.
type CardEntry struct {
	Path   string `json:"path"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

// CardListResult is the card_list result.
type CardListResult struct {
	Cards []CardEntry `json:"cards"`
}

func (s *Server) handleCardList(args json.RawMessage) (interface{}, error) {
	var a cardListArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}

	paths, err := runner.ListImages(a.Dir)
	if err != nil {
		return nil, err
	}

	cards := make([]CardEntry, 0, len(paths))
	for _, p := range paths {
		entry := CardEntry{Path: p}
		dims, err := imaging.GetDimensions(s.cache, p)
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Width, entry.Height = dims.Width, dims.Height
		}
		cards = append(cards, entry)
	}
	return &CardListResult{Cards: cards}, nil
}

type cardTransformArgs struct {
	Dir        string `json:"dir"`
	Transform  string `json:"transform"`
	BorderSize *int   `json:"border_size"`
	OutputDir  string `json:"output_dir"`
	DryRun     bool   `json:"dry_run"`
}

func (s *Server) handleCardTransform(args json.RawMessage) (interface{}, error) {
	var a cardTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Dir == "" {
		return nil, fmt.Errorf("dir is required")
	}

	params, err := s.cfg.Params()
	if err != nil {
		return nil, err
	}
	if a.BorderSize != nil {
		if *a.BorderSize < 0 {
			return nil, fmt.Errorf("border_size must not be negative")
		}
		params.BorderSize = *a.BorderSize
	}

	fn, err := transform.Lookup(a.Transform, params)
	if err != nil {
		return nil, err
	}

	outputDir := a.OutputDir
	if outputDir == "" {
		outputDir = s.cfg.OutputDir
	}
	onError := runner.ContinueOnError
	if s.cfg.StopOnError {
		onError = runner.StopOnError
	}

	r := runner.New(runner.Options{
		OutputDir: outputDir,
		OnError:   onError,
		DryRun:    a.DryRun,
		Observer:  runner.LogObserver{Logger: s.logger, Pixels: s.cfg.Verbose},
	})
	report, err := r.Run(a.Dir, fn)
	if report == nil {
		return nil, err
	}

	// Rewritten files must be re-read on the next inspection
	for _, f := range report.Files {
		s.cache.Evict(f.Path)
		if f.Output != "" {
			s.cache.Evict(f.Output)
		}
	}

	// Per-file failures are part of the report rather than a tool error
	if err != nil {
		s.logger.Printf("card_transform %s: %d of %d files failed", a.Transform, report.Failed, len(report.Files))
	}
	return report, nil
}

// === Image Inspection Handlers ===

type cardPathArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleCardDimensions(args json.RawMessage) (interface{}, error) {
	var a cardPathArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

type cardSampleColorArgs struct {
	Path string `json:"path"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

func (s *Server) handleCardSampleColor(args json.RawMessage) (interface{}, error) {
	var a cardSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.X, a.Y)
}
