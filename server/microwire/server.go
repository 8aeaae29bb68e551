package microwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"

	"github.com/microsql/microsql/internal/engine"
	"github.com/microsql/microsql/internal/sql"
	"github.com/microsql/microsql/internal/storage"
)

// Server exposes one engine over TCP. The engine has no internal locking, so
// every call goes through s.mu; that mutex is the serialization point the
// engine's concurrency contract requires.
type Server struct {
	eng *engine.Engine
	log *slog.Logger

	mu sync.Mutex
}

func NewServer(eng *engine.Engine, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{eng: eng, log: log}
}

// Serve accepts connections until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			s.log.Error("accept", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()
	s.log.Debug("client connected", "remote", conn.RemoteAddr())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// client closed or sent a bad frame
			return
		}

		resp := s.Handle(req)
		if err := WriteFrame(conn, resp); err != nil {
			s.log.Error("write response", "remote", conn.RemoteAddr(), "err", err)
			return
		}
	}
}

// Handle runs one request against the engine. Exported so the request path is
// testable without a socket.
func (s *Server) Handle(req ExecuteRequest) ExecuteResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	line := strings.TrimSpace(req.SQL)
	if strings.HasPrefix(line, ".") {
		return s.handleMeta(req.ID, line)
	}

	res, err := s.eng.Execute(line)
	if err != nil {
		return ExecuteResponse{ID: req.ID, Error: err.Error()}
	}
	return resultResponse(req.ID, res)
}

func (s *Server) handleMeta(id uint64, line string) ExecuteResponse {
	fields := strings.Fields(line)
	switch fields[0] {
	case ".tables":
		resp := ExecuteResponse{ID: id, Columns: []string{"table"}}
		for _, name := range s.eng.ListTables() {
			resp.Rows = append(resp.Rows, []any{name})
		}
		resp.Affected = len(resp.Rows)
		return resp

	case ".schema":
		if len(fields) != 2 {
			return ExecuteResponse{ID: id, Error: "usage: .schema <table>"}
		}
		schema, err := s.eng.DescribeTable(fields[1])
		if err != nil {
			return ExecuteResponse{ID: id, Error: err.Error()}
		}
		resp := ExecuteResponse{ID: id, Columns: []string{"column", "type", "constraints"}}
		for _, col := range schema.Cols {
			resp.Rows = append(resp.Rows, []any{col.Name, col.Type.String(), describeConstraints(col)})
		}
		resp.Affected = len(resp.Rows)
		return resp

	default:
		return ExecuteResponse{ID: id, Error: fmt.Sprintf("unknown meta command %q", fields[0])}
	}
}

func describeConstraints(col storage.Column) string {
	var parts []string
	if col.PrimaryKey {
		parts = append(parts, "PRIMARY KEY")
	}
	if col.Unique {
		parts = append(parts, "UNIQUE")
	}
	if col.NotNull {
		parts = append(parts, "NOT NULL")
	}
	if col.Default != nil {
		parts = append(parts, "DEFAULT "+col.Default.String())
	}
	return strings.Join(parts, " ")
}

func resultResponse(id uint64, res *engine.Result) ExecuteResponse {
	resp := ExecuteResponse{ID: id, Columns: res.Columns, Affected: res.Affected}
	for _, row := range res.Rows {
		out := make([]any, len(row))
		for i, v := range row {
			out[i] = valueToWire(v)
		}
		resp.Rows = append(resp.Rows, out)
	}
	return resp
}

func valueToWire(v sql.Value) any {
	if v.Null {
		return nil
	}
	switch v.Type {
	case sql.TypeInt:
		return v.I64
	case sql.TypeBool:
		return v.B
	default:
		return v.S
	}
}
