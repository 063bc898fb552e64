// Package app holds an application's window settings and root element and
// hands them, with the collected callbacks, to an external [Runtime].
package app

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/electripy/electripy/pkg/bridge"
	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/errors"
	"github.com/electripy/electripy/pkg/widgets"
)

// Defaults applied by New.
const (
	DefaultTitle        = "Electripy Application"
	DefaultWidth        = 1000
	DefaultHeight       = 600
	DefaultIconPath     = "./ui/public/logo.png"
	DefaultHost         = "localhost"
	DefaultEelPort      = 8888
	DefaultFrontendPort = 3000
)

// DefaultPadding is the padding of the Body created when no root is given.
var DefaultPadding = [2]int{10, 10}

// Window describes the native window the runtime opens.
type Window struct {
	Title          string `json:"title"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Transparent    bool   `json:"transparent"`
	RoundedCorners bool   `json:"rounded_corners"`
	WindowShadow   bool   `json:"window_shadow"`
	Resizable      bool   `json:"resizable"`
	IconPath       string `json:"icon_path"`
}

// DefaultWindow returns the window settings used by New.
func DefaultWindow() Window {
	return Window{
		Title:          DefaultTitle,
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Transparent:    true,
		RoundedCorners: true,
		WindowShadow:   true,
		IconPath:       DefaultIconPath,
	}
}

// App is an application: a window, a root element and the bridge ports.
type App struct {
	window       Window
	root         core.Element
	host         string
	eelPort      int
	frontendPort int
	development  bool
	listen       func(network, address string) (net.Listener, error)
	logger       *zap.Logger
}

// Option configures an App.
type Option func(*App)

// WithWindow replaces the window settings. Empty Title and IconPath and
// non-positive sizes keep their defaults.
func WithWindow(w Window) Option {
	return func(a *App) {
		def := a.window
		a.window = w
		if w.Title == "" {
			a.window.Title = def.Title
		}
		if w.IconPath == "" {
			a.window.IconPath = def.IconPath
		}
		if w.Width <= 0 || w.Height <= 0 {
			a.window.Width, a.window.Height = def.Width, def.Height
		}
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(a *App) { a.window.Title = title }
}

// WithSize sets the window size in pixels.
func WithSize(width, height int) Option {
	return func(a *App) { a.window.Width, a.window.Height = width, height }
}

// WithHost sets the interface the bridge listens on.
func WithHost(host string) Option {
	return func(a *App) { a.host = host }
}

// WithDevelopment marks launches as development launches.
func WithDevelopment(dev bool) Option {
	return func(a *App) { a.development = dev }
}

// WithListenFunc replaces net.Listen for the bridge listener.
func WithListenFunc(fn func(network, address string) (net.Listener, error)) Option {
	return func(a *App) {
		if fn != nil {
			a.listen = fn
		}
	}
}

// WithLogger sets the logger. It is named "app".
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l.Named("app")
		}
	}
}

// New returns an App for root. A nil root is replaced by a Body with
// DefaultPadding.
func New(root core.Element, opts ...Option) (*App, error) {
	a := &App{
		window:       DefaultWindow(),
		root:         root,
		host:         DefaultHost,
		eelPort:      DefaultEelPort,
		frontendPort: DefaultFrontendPort,
		listen:       net.Listen,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.root == nil {
		body, err := widgets.NewBody(widgets.BodyOptions{Padding: DefaultPadding})
		if err != nil {
			return nil, err
		}
		a.root = body
	}
	return a, nil
}

// Root returns the root element. App implements core.Host.
func (a *App) Root() core.Element {
	return a.root
}

// Window returns the window settings.
func (a *App) Window() Window {
	return a.window
}

// AddElement attaches e to the root through e.AddToApp.
func (a *App) AddElement(e core.Element) error {
	if e == nil {
		return errors.Errorf("app.AddElement", errors.KindInvalidChild, "",
			"%w: nil element", errors.ErrInvalidChild)
	}
	return e.AddToApp(a)
}

// Configure sets the bridge and frontend ports. Zero means unset; Start
// rejects unset ports.
func (a *App) Configure(eelPort, frontendPort int) {
	a.eelPort = eelPort
	a.frontendPort = frontendPort
}

// Ports returns the bridge and frontend ports.
func (a *App) Ports() (eelPort, frontendPort int) {
	return a.eelPort, a.frontendPort
}

// String describes the window settings followed by the root tree.
func (a *App) String() string {
	var sb strings.Builder
	w := a.window
	fmt.Fprintf(&sb, "<App title=%s size=(%d, %d) transparent=%t rounded_corners=%t window_shadow=%t resizable=%t icon_path=%s>\n",
		w.Title, w.Width, w.Height, w.Transparent, w.RoundedCorners, w.WindowShadow, w.Resizable, w.IconPath)
	sb.WriteString(core.FormatTree(a.root))
	return sb.String()
}

// Start collects the callbacks, serves the bridge on the eel port and hands
// the launch to rt. It returns when rt.Launch returns, when the bridge stops
// serving, or when ctx is done. A nil rt is Headless.
func (a *App) Start(ctx context.Context, rt Runtime) error {
	const op = "app.Start"
	if a.eelPort == 0 || a.frontendPort == 0 {
		return errors.Errorf(op, errors.KindMissingPort, "",
			"%w: eel_port=%d frontend_port=%d", errors.ErrMissingPortConfiguration, a.eelPort, a.frontendPort)
	}
	if rt == nil {
		rt = Headless{Logger: a.logger}
	}

	table, err := bridge.Collect(a.root, a.logger)
	if err != nil {
		return err
	}
	srv, err := bridge.NewServer(a.root, table, bridge.WithLogger(a.logger))
	if err != nil {
		return err
	}
	ln, err := a.listen("tcp", net.JoinHostPort(a.host, strconv.Itoa(a.eelPort)))
	if err != nil {
		return errors.Errorf(op, errors.KindBridge, "", "%w: listen: %v", errors.ErrBridge, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	served := make(chan error, 1)
	go func() {
		served <- srv.Serve(ctx, ln)
	}()

	req := LaunchRequest{
		Window:       a.window,
		Tree:         core.Render(a.root),
		Callbacks:    table.Names(),
		BridgeAddr:   ln.Addr().String(),
		FrontendPort: a.frontendPort,
		Development:  a.development,
	}
	a.logger.Info("launching",
		zap.String("title", a.window.Title),
		zap.String("bridge", req.BridgeAddr),
		zap.Int("frontend_port", req.FrontendPort),
		zap.Int("callbacks", len(req.Callbacks)))
	launched := make(chan error, 1)
	go func() {
		launched <- rt.Launch(ctx, req)
	}()

	select {
	case launchErr := <-launched:
		cancel()
		if err := <-served; err != nil && launchErr == nil {
			return err
		}
		return launchErr
	case err := <-served:
		// The bridge is gone; stop the runtime too.
		cancel()
		launchErr := <-launched
		if err != nil {
			a.logger.Error("bridge stopped", zap.Error(err))
			return err
		}
		return launchErr
	}
}
