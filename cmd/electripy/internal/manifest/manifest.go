// Package manifest builds element trees from YAML layout files.
//
// A layout lists the elements placed on the root Body:
//
//	padding: [10, 10]
//	elements:
//	  - kind: Button
//	    text: Save
//	    icon: save
//	    position: {x: 0.5, y: 0.5, relative: true}
//	    on:
//	      onClick: saved
//	  - kind: Paragraph
//	    class: caption
//	    text: Hello
//	    position: {x: 20, y: 40}
//
// Every "on" entry exposes a callback that logs the invocation and replies
// with the given message.
package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/electripy/electripy/pkg/assets"
	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/errors"
	"github.com/electripy/electripy/pkg/layout"
	"github.com/electripy/electripy/pkg/widgets"
)

// Layout is the root of a layout file.
type Layout struct {
	Padding  [2]int        `yaml:"padding"`
	Elements []ElementSpec `yaml:"elements"`
}

// ElementSpec describes one element.
type ElementSpec struct {
	Kind     string            `yaml:"kind"`
	Class    string            `yaml:"class,omitempty"`
	Position PositionSpec      `yaml:"position,omitempty"`
	Text     string            `yaml:"text,omitempty"`
	FontSize int               `yaml:"font_size,omitempty"`
	Icon     string            `yaml:"icon,omitempty"`
	Src      string            `yaml:"src,omitempty"`
	Alt      string            `yaml:"alt,omitempty"`
	Fit      string            `yaml:"fit,omitempty"`
	Width    int               `yaml:"width,omitempty"`
	Height   int               `yaml:"height,omitempty"`
	Style    string            `yaml:"style,omitempty"`
	On       map[string]string `yaml:"on,omitempty"`
	Children []ElementSpec     `yaml:"children,omitempty"`
}

// PositionSpec is a position. Relative coordinates are fractions of the
// parent's box, absolute ones are whole pixels.
type PositionSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Relative bool    `yaml:"relative,omitempty"`
}

// Position converts p.
func (p PositionSpec) Position() (layout.Position, error) {
	if p.Relative {
		return layout.Frac(p.X, p.Y), nil
	}
	if p.X != float64(int(p.X)) || p.Y != float64(int(p.Y)) {
		return layout.Position{}, fmt.Errorf("absolute position (%v, %v) must be whole pixels; set relative: true for fractions", p.X, p.Y)
	}
	return layout.Px(int(p.X), int(p.Y)), nil
}

// Parse decodes a layout, rejecting unknown fields.
func Parse(data []byte) (*Layout, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var l Layout
	if err := dec.Decode(&l); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	return &l, nil
}

// Load reads and parses the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	return Parse(data)
}

// Options configures Build.
type Options struct {
	// Loader resolves image sources. Nil means an assets.Fetcher.
	Loader assets.Loader
	// Icons is the Button icon table. Nil means widgets.DefaultIcons().
	Icons *widgets.Icons
	// Registry is the kind allow-list. Nil means the built-in kinds.
	Registry *core.Registry
	Logger   *zap.Logger
}

// Build constructs the Body described by l.
func Build(l *Layout, opts Options) (*widgets.Body, error) {
	b := &builder{opts: opts, logger: opts.Logger}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.opts.Loader == nil {
		b.opts.Loader = assets.NewFetcher(assets.WithLogger(b.logger))
	}

	placements := make([]widgets.Placement, 0, len(l.Elements))
	for i, spec := range l.Elements {
		pos, err := spec.Position.Position()
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		e, err := b.element(spec, widgets.Common{Registry: opts.Registry, Position: pos}, fmt.Sprintf("elements[%d]", i))
		if err != nil {
			return nil, err
		}
		placements = append(placements, widgets.At(e, pos))
	}
	return widgets.NewBody(widgets.BodyOptions{
		Common:   widgets.Common{Registry: opts.Registry},
		Padding:  l.Padding,
		Elements: placements,
	})
}

type builder struct {
	opts   Options
	logger *zap.Logger
}

func (b *builder) element(spec ElementSpec, common widgets.Common, path string) (core.Element, error) {
	common.Class = spec.Class
	size := widgets.Size{Width: spec.Width, Height: spec.Height}

	var (
		e   core.Element
		err error
	)
	switch core.Kind(spec.Kind) {
	case core.KindButton:
		e, err = widgets.NewButton(widgets.ButtonOptions{
			Common:   common,
			Text:     spec.Text,
			FontSize: spec.FontSize,
			Size:     size,
			Icon:     spec.Icon,
			Icons:    b.opts.Icons,
			Loader:   b.opts.Loader,
		})
	case core.KindParagraph:
		e, err = widgets.NewParagraph(widgets.ParagraphOptions{
			Common:   common,
			Text:     spec.Text,
			FontSize: spec.FontSize,
		})
	case core.KindImage:
		var fit widgets.ImageFit
		fit, err = parseFit(spec.Fit)
		if err == nil {
			e, err = widgets.NewImage(widgets.ImageOptions{
				Common: common,
				Src:    spec.Src,
				Alt:    spec.Alt,
				Fit:    fit,
				Size:   size,
				Loader: b.opts.Loader,
			})
		}
	default:
		if _, lookupErr := b.opts.Registry.Lookup(spec.Kind); lookupErr != nil {
			err = lookupErr
		} else {
			err = errors.Errorf("manifest.Build", errors.KindUnknownElement, spec.Kind,
				"%w: no layout support for %q", errors.ErrUnknownElementKind, spec.Kind)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	n := e.Base()
	if spec.Style != "" {
		if err := n.AddStyleString(spec.Style); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(spec.On)) {
		ev, err := core.ParseEvent(name)
		if err != nil {
			return nil, fmt.Errorf("%s.on: %w", path, err)
		}
		if err := n.AddCallback(ev, b.reply(n, ev, spec.On[name])); err != nil {
			return nil, fmt.Errorf("%s.on: %w", path, err)
		}
	}

	for i, child := range spec.Children {
		childPath := fmt.Sprintf("%s.children[%d]", path, i)
		pos, err := child.Position.Position()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", childPath, err)
		}
		if _, err := b.element(child, widgets.Common{Parent: e, Position: pos, Registry: b.opts.Registry}, childPath); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// reply returns a callback that logs its invocation and answers message.
func (b *builder) reply(n *core.Node, ev core.Event, message string) core.Callback {
	logger := b.logger.With(
		zap.String("element", n.Name()),
		zap.String("id", n.ID()),
		zap.String("event", string(ev)))
	return func(_ context.Context, params json.RawMessage) (any, error) {
		logger.Info("callback invoked", zap.ByteString("params", params))
		return message, nil
	}
}

func parseFit(s string) (widgets.ImageFit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contain":
		return widgets.FitContain, nil
	case "fill":
		return widgets.FitFill, nil
	default:
		return 0, fmt.Errorf("unknown image fit %q (use contain or fill)", s)
	}
}
