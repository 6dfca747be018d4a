// Package mcp implements the Model Context Protocol request processor: it
// takes decoded JSON-RPC requests, dispatches tool calls to the document
// service, and shapes results into MCP response structures. Transports own
// the bytes; this package owns the protocol.
package mcp

import (
	"encoding/json"
	"fmt"

	appErrors "document-ops-server/internal/errors"
	"document-ops-server/internal/models"
	"document-ops-server/internal/ops"
	"document-ops-server/internal/service"
)

const (
	protocolVersion = "2024-11-05"
	serverName      = "document-ops-server"
	serverVersion   = "0.1.0"

	// CapabilitiesURI identifies the single resource this server exposes.
	CapabilitiesURI = "capabilities://document-operations"
)

// Processor handles MCP requests against a document service.
type Processor struct {
	service service.DocumentOperationService
	logger  ops.Logger
}

// NewProcessor creates a new Processor.
func NewProcessor(svc service.DocumentOperationService, logger ops.Logger) (*Processor, error) {
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	return &Processor{service: svc, logger: logger}, nil
}

// Process dispatches a single JSON-RPC request and returns the response. A
// nil response means the request was a notification and nothing should be
// written back.
func (p *Processor) Process(request *models.JSONRPCRequest) *models.JSONRPCResponse {
	if request.JSONRPC != "2.0" {
		return p.errorResponse(request.ID, appErrors.NewInvalidRequestError(
			fmt.Sprintf("unsupported jsonrpc version %q", request.JSONRPC)))
	}

	switch request.Method {
	case "initialize":
		return p.resultResponse(request.ID, p.initializeResult())
	case "notifications/initialized":
		return nil
	case "tools/list":
		return p.resultResponse(request.ID, models.ToolsListResponse{Tools: toolDefinitions()})
	case "tools/call":
		return p.handleToolsCall(request)
	case "resources/list":
		return p.resultResponse(request.ID, p.resourcesList())
	case "resources/read":
		return p.handleResourcesRead(request)
	case "":
		return p.errorResponse(request.ID, appErrors.NewInvalidRequestError("missing method"))
	default:
		return p.errorResponse(request.ID, appErrors.NewMethodNotFoundError(request.Method))
	}
}

func (p *Processor) resultResponse(id interface{}, result interface{}) *models.JSONRPCResponse {
	return &models.JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func (p *Processor) errorResponse(id interface{}, detail *models.ErrorDetail) *models.JSONRPCResponse {
	return &models.JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: appErrors.ToJSONRPCError(detail)}
}

func (p *Processor) initializeResult() models.InitializeResponse {
	return models.InitializeResponse{
		ProtocolVersion: protocolVersion,
		Capabilities:    models.Capabilities{},
		ServerInfo: models.ServerInfo{
			Name:        serverName,
			Version:     serverVersion,
			Description: "MCP server for creating, editing and converting Word, Excel and PDF documents",
		},
	}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall decodes the tool arguments and invokes the service. The
// result envelope is serialized as the single text content block; IsError
// mirrors the envelope's success flag so MCP clients see failures without
// parsing the JSON.
func (p *Processor) handleToolsCall(request *models.JSONRPCRequest) *models.JSONRPCResponse {
	var params toolCallParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return p.errorResponse(request.ID, appErrors.NewInvalidParamsError(
			fmt.Sprintf("invalid tools/call params: %v", err)))
	}
	if params.Name == "" {
		return p.errorResponse(request.ID, appErrors.NewInvalidParamsError("missing tool name"))
	}

	result, errDetail := p.CallTool(params.Name, params.Arguments)
	if errDetail != nil {
		return p.errorResponse(request.ID, errDetail)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return p.errorResponse(request.ID, appErrors.NewInternalError(
			fmt.Sprintf("marshaling tool result: %v", err)))
	}
	p.logger.Printf("tools/call %s: success=%t", params.Name, result.Success)
	return p.resultResponse(request.ID, models.MCPToolResult{
		Content: []models.MCPToolContent{{Type: "text", Text: string(payload)}},
		IsError: !result.Success,
	})
}

// CallTool routes a tool name to the matching service method. Structural
// decode failures are protocol-level invalid params; everything past decoding
// is the service's business and comes back as an envelope. The HTTP transport
// calls this directly, bypassing the JSON-RPC framing.
func (p *Processor) CallTool(name string, arguments json.RawMessage) (*models.OperationResult, *models.ErrorDetail) {
	if len(arguments) == 0 {
		arguments = json.RawMessage("{}")
	}
	decode := func(v interface{}) *models.ErrorDetail {
		if err := json.Unmarshal(arguments, v); err != nil {
			return appErrors.NewInvalidParamsError(fmt.Sprintf("invalid arguments for %s: %v", name, err))
		}
		return nil
	}

	switch name {
	case "create_word_document":
		var req models.CreateDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.CreateWordDocument(req), nil
	case "edit_word_document":
		var req models.EditDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.EditWordDocument(req), nil
	case "convert_txt_to_word":
		var req models.ConvertDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.ConvertTxtToWord(req), nil
	case "extract_docx_text":
		var req models.ExtractTextRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.ExtractDocxText(req), nil
	case "create_excel_file":
		var req models.CreateDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.CreateExcelFile(req), nil
	case "edit_excel_file":
		var req models.EditDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.EditExcelFile(req), nil
	case "convert_csv_to_excel":
		var req models.ConvertDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.ConvertCSVToExcel(req), nil
	case "create_pdf_file":
		var req models.CreateDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.CreatePDFFile(req), nil
	case "convert_word_to_pdf":
		var req models.ConvertDocumentRequest
		if d := decode(&req); d != nil {
			return nil, d
		}
		return p.service.ConvertWordToPDF(req), nil
	default:
		return nil, appErrors.NewMethodNotFoundError(name)
	}
}

func (p *Processor) resourcesList() models.MCPResourcesListResponse {
	return models.MCPResourcesListResponse{
		Resources: []models.MCPResourceDefinition{
			{
				URI:         CapabilitiesURI,
				Name:        "Document operation capabilities",
				Description: "Machine-readable description of the supported document operations",
				MIMEType:    "application/json",
			},
		},
	}
}

type resourcesReadParams struct {
	URI string `json:"uri"`
}

func (p *Processor) handleResourcesRead(request *models.JSONRPCRequest) *models.JSONRPCResponse {
	var params resourcesReadParams
	if err := json.Unmarshal(request.Params, &params); err != nil {
		return p.errorResponse(request.ID, appErrors.NewInvalidParamsError(
			fmt.Sprintf("invalid resources/read params: %v", err)))
	}
	if params.URI != CapabilitiesURI {
		return p.errorResponse(request.ID, appErrors.NewInvalidParamsError(
			fmt.Sprintf("unknown resource %q", params.URI)))
	}
	payload, err := json.Marshal(p.service.Capabilities())
	if err != nil {
		return p.errorResponse(request.ID, appErrors.NewInternalError(
			fmt.Sprintf("marshaling capabilities: %v", err)))
	}
	return p.resultResponse(request.ID, models.MCPResourcesReadResponse{
		Contents: []models.MCPResourceContent{
			{URI: CapabilitiesURI, MIMEType: "application/json", Text: string(payload)},
		},
	})
}
