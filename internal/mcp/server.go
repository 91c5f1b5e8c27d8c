// Package mcp exposes the analysis operations as Model Context Protocol
// tools over two transports: newline-delimited JSON-RPC on stdio, and a
// stateless HTTP endpoint. The transport recovers every classified core
// failure into a structured tool error; a malformed call never takes the
// serving process down.
package mcp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/leapstack-labs/csvprobe/internal/analyze"
	"github.com/leapstack-labs/csvprobe/pkg/core"
)

// ServerName and ServerVersion identify this server to clients.
const (
	ServerName    = "csvprobe"
	ServerVersion = "0.1.0"
)

// Server handles MCP JSON-RPC traffic for one analyzer.
type Server struct {
	analyzer *analyze.Analyzer

	reader  *bufio.Reader
	writer  io.Writer
	writeMu sync.Mutex

	logger *slog.Logger

	// initialized is written by Handle, which the HTTP transport invokes
	// from concurrent requests.
	initialized atomic.Bool
}

// NewServer creates an MCP server reading from reader and writing to writer.
func NewServer(analyzer *analyze.Analyzer, reader io.Reader, writer io.Writer) *Server {
	return NewServerWithLogger(analyzer, reader, writer, nil)
}

// NewServerWithLogger creates an MCP server with a custom logger.
func NewServerWithLogger(analyzer *analyze.Analyzer, reader io.Reader, writer io.Writer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return &Server{
		analyzer: analyzer,
		reader:   bufio.NewReader(reader),
		writer:   writer,
		logger:   logger,
	}
}

// Run processes messages until the client disconnects. Messages are
// newline-delimited JSON-RPC, the MCP stdio framing.
func (s *Server) Run() error {
	s.logger.Info("MCP server starting", "data_root", s.analyzer.DataRoot())

	for {
		line, err := s.reader.ReadBytes('\n')
		if len(line) == 0 && err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Info("client disconnected")
				return nil
			}
			return fmt.Errorf("reading message: %w", err)
		}

		if len(bytes.TrimSpace(line)) == 0 {
			if err != nil {
				s.logger.Info("client disconnected")
				return nil
			}
			continue
		}

		var msg JSONRPCMessage
		if jsonErr := json.Unmarshal(line, &msg); jsonErr != nil {
			s.logger.Error("malformed message", "error", jsonErr)
			s.writeMessage(&JSONRPCMessage{
				JSONRPC: "2.0",
				Error:   &JSONRPCError{Code: CodeParseError, Message: jsonErr.Error()},
			})
			continue
		}

		if resp := s.Handle(&msg); resp != nil {
			s.writeMessage(resp)
		}

		if err != nil {
			// The final line carried no trailing newline; treat as EOF.
			s.logger.Info("client disconnected")
			return nil
		}
	}
}

// Handle dispatches a single message and returns the response, or nil for
// notifications.
func (s *Server) Handle(msg *JSONRPCMessage) *JSONRPCMessage {
	s.logger.Debug("received", "method", msg.Method)

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "notifications/initialized":
		s.initialized.Store(true)
		s.logger.Info("client initialized")
		return nil
	case "ping":
		return response(msg.ID, struct{}{})
	case "tools/list":
		return response(msg.ID, &ListToolsResult{Tools: s.tools()})
	case "tools/call":
		return s.handleCallTool(msg)
	default:
		if msg.ID == nil {
			// Unknown notification: ignore.
			return nil
		}
		return errorResponse(msg.ID, CodeMethodNotFound, "method not found: "+msg.Method)
	}
}

func (s *Server) handleInitialize(msg *JSONRPCMessage) *JSONRPCMessage {
	var params InitializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return errorResponse(msg.ID, CodeInvalidParams, err.Error())
		}
	}
	if params.ClientInfo != nil {
		s.logger.Info("initialize", "client", params.ClientInfo.Name, "version", params.ClientInfo.Version)
	}

	return response(msg.ID, &InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    ServerCapabilities{Tools: &ToolsCapability{}},
		ServerInfo:      Implementation{Name: ServerName, Version: ServerVersion},
	})
}

func (s *Server) handleCallTool(msg *JSONRPCMessage) *JSONRPCMessage {
	var params CallToolParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return errorResponse(msg.ID, CodeInvalidParams, err.Error())
	}

	callID := uuid.NewString()
	s.logger.Info("tool call", "call_id", callID, "tool", params.Name)

	result, err := s.callTool(params.Name, params.Arguments)
	if err != nil {
		if kind, ok := core.KindOf(err); ok {
			// Classified failures become structured tool errors, never
			// protocol faults.
			s.logger.Warn("tool call failed", "call_id", callID, "kind", string(kind), "error", err)
			return response(msg.ID, &CallToolResult{
				Content: []ContentBlock{{Type: "text", Text: err.Error()}},
				IsError: true,
			})
		}
		if errors.Is(err, errUnknownTool) || errors.Is(err, errInvalidArgs) {
			return errorResponse(msg.ID, CodeInvalidParams, err.Error())
		}
		s.logger.Error("tool call error", "call_id", callID, "error", err)
		return errorResponse(msg.ID, CodeInternalError, err.Error())
	}

	text, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return errorResponse(msg.ID, CodeInternalError, marshalErr.Error())
	}
	return response(msg.ID, &CallToolResult{
		Content:           []ContentBlock{{Type: "text", Text: string(text)}},
		StructuredContent: result,
	})
}

func response(id *json.RawMessage, result any) *JSONRPCMessage {
	data, err := json.Marshal(result)
	if err != nil {
		return errorResponse(id, CodeInternalError, err.Error())
	}
	return &JSONRPCMessage{JSONRPC: "2.0", ID: id, Result: data}
}

func errorResponse(id *json.RawMessage, code int, message string) *JSONRPCMessage {
	return &JSONRPCMessage{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &JSONRPCError{Code: code, Message: message},
	}
}

func (s *Server) writeMessage(msg *JSONRPCMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("marshaling message", "error", err)
		return
	}
	body = append(body, '\n')
	if _, err := s.writer.Write(body); err != nil {
		s.logger.Error("writing message", "error", err)
	}
}
