package bridge

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net"
	"sync"

	"github.com/sourcegraph/jsonrpc2"
	"go.uber.org/zap"

	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/errors"
)

// Built-in RPC methods. Any other method is looked up in the Table.
const (
	MethodTree      = "electripy.tree"
	MethodCallbacks = "electripy.callbacks"
)

var errMethodNotFound = &jsonrpc2.Error{
	Code: jsonrpc2.CodeMethodNotFound, Message: "method not found"}

// Server answers JSON-RPC requests for one element tree.
type Server struct {
	root   core.Element
	table  *Table
	logger *zap.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the logger. It is named "bridge".
func WithLogger(l *zap.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l.Named("bridge")
		}
	}
}

// NewServer returns a server for root. A nil table is collected from root.
func NewServer(root core.Element, table *Table, opts ...ServerOption) (*Server, error) {
	s := &Server{root: root, table: table, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	if s.table == nil {
		t, err := Collect(root, s.logger)
		if err != nil {
			return nil, err
		}
		s.table = t
	}
	return s, nil
}

// Table returns the callback table.
func (s *Server) Table() *Table {
	return s.table
}

type method func(context.Context, json.RawMessage) (any, error)

func (s *Server) handler() jsonrpc2.Handler {
	return routingHandler(map[string]method{
		MethodTree:      s.tree,
		MethodCallbacks: s.callbacks,
	}, s.invoke)
}

func routingHandler(methods map[string]method, fallback func(context.Context, string, json.RawMessage) (any, error)) jsonrpc2.Handler {
	return jsonrpc2.HandlerWithError(func(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
		var params json.RawMessage
		if req.Params != nil {
			params = *req.Params
		}
		if fn, ok := methods[req.Method]; ok {
			return fn(ctx, params)
		}
		return fallback(ctx, req.Method, params)
	})
}

func (s *Server) tree(_ context.Context, _ json.RawMessage) (any, error) {
	return core.Render(s.root), nil
}

func (s *Server) callbacks(_ context.Context, _ json.RawMessage) (any, error) {
	return s.table.Names(), nil
}

func (s *Server) invoke(ctx context.Context, name string, params json.RawMessage) (any, error) {
	if _, ok := s.table.Lookup(name); !ok {
		s.logger.Debug("unknown method", zap.String("method", name))
		return nil, errMethodNotFound
	}
	result, err := s.table.Invoke(ctx, name, params)
	if err != nil {
		s.logger.Warn("callback failed", zap.String("name", name), zap.Error(err))
		// Panics were already reported by Invoke.
		if !stderrors.Is(err, errors.ErrBridge) {
			errors.Report("bridge.invoke", errors.Errorf("bridge.invoke", errors.KindBridge, name,
				"%w: callback failed: %w", errors.ErrBridge, err))
		}
		return nil, &jsonrpc2.Error{Code: jsonrpc2.CodeInternalError, Message: err.Error()}
	}
	return result, nil
}

// ServeConn serves one connection until the peer disconnects or ctx is done.
func (s *Server) ServeConn(ctx context.Context, rwc io.ReadWriteCloser) {
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		s.handler())
	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
}

// Serve accepts connections on ln until ctx is done, then closes ln and
// waits for open connections to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	s.logger.Info("bridge listening",
		zap.Stringer("addr", ln.Addr()),
		zap.Int("callbacks", s.table.Len()))
	for {
		c, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, net.ErrClosed) {
				return nil
			}
			err = errors.Errorf("bridge.Serve", errors.KindBridge, "", "%w: accept: %w", errors.ErrBridge, err)
			errors.Report("bridge.Serve", err)
			return err
		}
		s.logger.Debug("frontend connected", zap.Stringer("remote", c.RemoteAddr()))
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer errors.Recover("bridge.ServeConn")
			s.ServeConn(ctx, c)
		}()
	}
}
