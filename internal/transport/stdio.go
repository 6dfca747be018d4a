// Package transport carries MCP traffic over stdio or HTTP. The stdio
// transport speaks line-delimited JSON-RPC; the HTTP transport exposes one
// endpoint per tool plus health and capabilities endpoints.
package transport

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	appErrors "document-ops-server/internal/errors"
	"document-ops-server/internal/mcp"
	"document-ops-server/internal/models"
	"document-ops-server/internal/ops"
)

// maxLineSize bounds a single JSON-RPC request line on stdio.
const maxLineSize = 16 * 1024 * 1024

// StdioTransport reads one JSON-RPC request per line from its input and
// writes one response per line to its output.
type StdioTransport struct {
	processor *mcp.Processor
	logger    ops.Logger
	in        io.Reader
	out       io.Writer
}

// NewStdioTransport creates a new StdioTransport.
func NewStdioTransport(processor *mcp.Processor, logger ops.Logger, in io.Reader, out io.Writer) (*StdioTransport, error) {
	if processor == nil {
		return nil, fmt.Errorf("processor cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if in == nil || out == nil {
		return nil, fmt.Errorf("input and output streams cannot be nil")
	}
	return &StdioTransport{processor: processor, logger: logger, in: in, out: out}, nil
}

// Run processes requests until the input is exhausted or the context is
// canceled. Malformed JSON produces a parse error response with a null id;
// the loop keeps going either way.
func (t *StdioTransport) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(t.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var request models.JSONRPCRequest
		if err := json.Unmarshal(line, &request); err != nil {
			t.logger.Printf("WARN: unparseable request line: %v", err)
			if werr := t.writeResponse(&models.JSONRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   appErrors.ToJSONRPCError(appErrors.NewParseError(err.Error())),
			}); werr != nil {
				return werr
			}
			continue
		}

		response := t.processor.Process(&request)
		if response == nil {
			continue
		}
		if err := t.writeResponse(response); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	return nil
}

func (t *StdioTransport) writeResponse(response *models.JSONRPCResponse) error {
	payload, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	payload = append(payload, '\n')
	if _, err := t.out.Write(payload); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}
