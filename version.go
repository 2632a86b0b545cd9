package palisade

// Version is the library version reported by the CLI and the MCP server.
const Version = "0.3.0"
