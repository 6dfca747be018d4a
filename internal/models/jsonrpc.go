package models

import "encoding/json"

// JSONRPCRequest represents a JSON-RPC request object.
type JSONRPCRequest struct {
	// JSONRPC specifies the version of the JSON-RPC protocol, must be "2.0".
	JSONRPC string `json:"jsonrpc"`
	// ID is a unique identifier established by the client. It can be a
	// string or a number; the server must reply with the same ID.
	ID interface{} `json:"id"`
	// Method is the name of the method to be invoked.
	Method string `json:"method"`
	// Params holds the parameter values for the method. Parsing is deferred
	// until the method is known.
	Params json.RawMessage `json:"params"`
}

// JSONRPCErrorData defines the 'data' field of a JSON-RPC error object with
// additional, application-specific error information.
type JSONRPCErrorData struct {
	// Filepath is the document path involved in the error, if applicable.
	Filepath string `json:"filepath,omitempty"`
	// Operation is the tool or operation being performed when the error
	// occurred, if applicable.
	Operation string `json:"operation,omitempty"`
	// Timestamp records when the error occurred.
	Timestamp string `json:"timestamp,omitempty"`
	// Details provides any other specific details about the error.
	Details string `json:"details,omitempty"`
}

// JSONRPCError represents a JSON-RPC error object.
type JSONRPCError struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Data    *JSONRPCErrorData `json:"data,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC response object. Exactly one of
// Result and Error is set.
type JSONRPCResponse struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      interface{}   `json:"id"`
	Result  interface{}   `json:"result,omitempty"`
	Error   *JSONRPCError `json:"error,omitempty"`
}
