package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/electripy/electripy/pkg/app"
)

func init() {
	RegisterCommand(&Command{
		Name:  "serve",
		Short: "Serve the callback bridge of a layout",
		Long: `Build the layout and serve its exposed callbacks over the JSON-RPC
bridge until interrupted. No window is opened; point a frontend at the
bridge address.

Flags:
  --host HOST           Bridge host (default from electripy.yaml, or localhost)
  --eel-port PORT       Bridge port
  --frontend-port PORT  Frontend development server port`,
		Usage: "electripy serve [layout] [--host HOST] [--eel-port PORT] [--frontend-port PORT]",
		Run:   runServe,
	})
}

func parseServeFlags(args []string) (overrides, error) {
	var f overrides
	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--host", "--eel-port", "--frontend-port":
			if !hasValue {
				if i+1 >= len(args) {
					return f, fmt.Errorf("%s requires a value", name)
				}
				i++
				value = args[i]
			}
			if name == "--host" {
				f.host = value
				continue
			}
			port, err := strconv.Atoi(value)
			if err != nil || port < 1 || port > 65535 {
				return f, fmt.Errorf("%s: invalid port %q", name, value)
			}
			if name == "--eel-port" {
				f.eelPort = port
			} else {
				f.frontendPort = port
			}
		default:
			if strings.HasPrefix(arg, "-") {
				return f, fmt.Errorf("unknown flag: %s", arg)
			}
			if f.layout != "" {
				return f, fmt.Errorf("unexpected argument: %s", arg)
			}
			f.layout = arg
		}
	}
	return f, nil
}

func runServe(args []string) error {
	f, err := parseServeFlags(args)
	if err != nil {
		return err
	}
	p, err := openProject(f)
	if err != nil {
		return err
	}
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(stderr, "Serving %s (press Ctrl+C to stop)\n", p.cfg.Layout)
	return p.app.Start(ctx, app.Headless{Logger: p.logger})
}
