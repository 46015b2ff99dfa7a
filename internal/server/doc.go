// Package server implements an MCP (Model Context Protocol) server that
// exposes the card clean-up passes as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Directory Operations:
//   - card_list: List PNG images in a directory with their dimensions
//   - card_transform: Run normalize-alpha, border-to-transparent,
//     near-white-to-transparent or red-to-gray over a directory
//
// Image Inspection:
//   - card_dimensions: Get width and height
//   - card_sample_color: Get the color at a pixel
//
// # Caching
//
// Images opened for inspection are cached by their absolute, cleaned path.
// card_transform evicts every file it touched so that later inspections see
// the rewritten pixels, however the client spelled the path.
//
// # Error Handling
//
// A line that is not JSON gets error -32700 with a null id, a request whose
// jsonrpc field is not "2.0" gets -32600, bad tool arguments -32602 and
// failed tools -32000.
// A card_transform run in which individual files fail still succeeds; the
// failures are listed in the returned report.
package server
