package models

// MCPToolContent represents one content block of a tool result.
type MCPToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MCPToolResult represents the result of a tools/call invocation.
type MCPToolResult struct {
	Content []MCPToolContent `json:"content"`
	IsError bool             `json:"isError"`
}

// MCPResourceContent is the content of a read resource.
type MCPResourceContent struct {
	URI      string `json:"uri"`
	MIMEType string `json:"mimeType,omitempty"`
	Text     string `json:"text,omitempty"`
}

// MCPResourcesReadResponse is the result of a resources/read invocation.
type MCPResourcesReadResponse struct {
	Contents []MCPResourceContent `json:"contents"`
}

// MCPResourceDefinition describes one resource for resources/list.
type MCPResourceDefinition struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MIMEType    string `json:"mimeType,omitempty"`
}

// MCPResourcesListResponse is the result of a resources/list invocation.
type MCPResourcesListResponse struct {
	Resources []MCPResourceDefinition `json:"resources"`
}
