package models

// InitializeResponse is the JSON result of the "initialize" method.
type InitializeResponse struct {
	ProtocolVersion string       `json:"protocolVersion"`
	Capabilities    Capabilities `json:"capabilities"`
	ServerInfo      ServerInfo   `json:"serverInfo"`
}

// ServerInfo provides information about the server.
type ServerInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// Capabilities advertises the protocol features the server supports.
type Capabilities struct {
	Tools     ToolsCapabilities     `json:"tools"`
	Resources ResourcesCapabilities `json:"resources"`
}

// ToolsCapabilities is an empty object for now; its presence signals tool
// support.
type ToolsCapabilities struct{}

// ResourcesCapabilities is an empty object for now; its presence signals
// resource support.
type ResourcesCapabilities struct{}

// ToolsListResponse is the JSON result of the "tools/list" method.
type ToolsListResponse struct {
	Tools []ToolDefinition `json:"tools"`
}

// ToolDefinition describes a single tool available through the server.
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema Schema          `json:"inputSchema"`
	Annotations ToolAnnotations `json:"annotations"`
}

// Schema represents a JSON schema, kept as a loose map for flexibility.
type Schema map[string]interface{}

// ToolAnnotations provides hints about the tool's behavior.
type ToolAnnotations struct {
	ReadOnlyHint    bool `json:"readOnlyHint"`
	DestructiveHint bool `json:"destructiveHint"`
}
