package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/electripy/electripy/pkg/core"
)

// LaunchRequest is everything a runtime needs to show the application.
type LaunchRequest struct {
	Window Window `json:"window"`
	// Tree is the rendered snapshot of the root at launch time.
	Tree core.RenderedNode `json:"tree"`
	// Callbacks are the exposed callback names, sorted.
	Callbacks []string `json:"callbacks"`
	// BridgeAddr is the host:port the JSON-RPC bridge listens on.
	BridgeAddr   string `json:"bridge_addr"`
	FrontendPort int    `json:"frontend_port"`
	Development  bool   `json:"development"`
}

// Runtime opens the window and drives the frontend. It is the boundary to
// the browser process, which electripy does not manage itself.
type Runtime interface {
	// Launch blocks until the window is closed or ctx is done.
	Launch(ctx context.Context, req LaunchRequest) error
}

// RuntimeFunc adapts a function to Runtime.
type RuntimeFunc func(ctx context.Context, req LaunchRequest) error

// Launch calls f.
func (f RuntimeFunc) Launch(ctx context.Context, req LaunchRequest) error {
	return f(ctx, req)
}

// Headless serves the bridge without opening a window. Launch waits for ctx.
type Headless struct {
	Logger *zap.Logger
}

func (h Headless) Launch(ctx context.Context, req LaunchRequest) error {
	logger := h.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("running headless; connect a frontend to the bridge",
		zap.String("bridge", req.BridgeAddr),
		zap.Strings("callbacks", req.Callbacks))
	<-ctx.Done()
	return nil
}
