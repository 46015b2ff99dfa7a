package server

import "github.com/ironsheep/cardprep/internal/transform"

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Directory Operations
		{
			Name:        "card_list",
			Description: "List the PNG card images in a directory (non-recursive, extension matched case-insensitively) with their dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory",
					},
				},
				"required": []string{"dir"},
			},
		},
		{
			Name:        "card_transform",
			Description: "Apply a per-pixel clean-up pass to every PNG in a directory. Files are overwritten in place unless output_dir is given. Use dry_run to count affected pixels without writing.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory",
					},
					"transform": map[string]interface{}{
						"type":        "string",
						"description": "Pass to apply",
						"enum":        transform.Names(),
					},
					"border_size": map[string]interface{}{
						"type":        "integer",
						"description": "Border thickness in pixels for border-to-transparent. Default from configuration (10)",
					},
					"output_dir": map[string]interface{}{
						"type":        "string",
						"description": "Write results here instead of overwriting the originals",
					},
					"dry_run": map[string]interface{}{
						"type":        "boolean",
						"description": "Count changed pixels without writing any file",
						"default":     false,
					},
				},
				"required": []string{"dir", "transform"},
			},
		},

		// Image Inspection
		{
			Name:        "card_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "card_sample_color",
			Description: "Get the exact color of the pixel at (x, y), as hex, RGBA and HSL. Useful for checking what a pass will match before running it.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Y coordinate (0-based)",
					},
				},
				"required": []string{"path", "x", "y"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
