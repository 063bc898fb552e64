package widgets

import (
	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/style"
)

// DefaultFontSize is the font size in pixels used when none is given.
const DefaultFontSize = 10

// ParagraphOptions configures NewParagraph.
type ParagraphOptions struct {
	Common
	Text string
	// FontSize in pixels. Defaults to DefaultFontSize if zero.
	FontSize int
	// OnKeyPress is exposed to the frontend as the onKeyPress callback.
	OnKeyPress core.Callback
}

// Paragraph is a text leaf.
type Paragraph struct {
	core.Node
	text       string
	fontSize   int
	onKeyPress core.Callback
}

// NewParagraph builds a Paragraph.
func NewParagraph(opts ParagraphOptions) (*Paragraph, error) {
	if opts.FontSize == 0 {
		opts.FontSize = DefaultFontSize
	}
	p := &Paragraph{text: opts.Text, fontSize: opts.FontSize, onKeyPress: opts.OnKeyPress}
	if err := p.Init(p, opts.options(core.KindParagraph)); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Paragraph) Setup() error {
	p.AddStyle(style.Decl{Property: "font-size", Value: px(p.fontSize)})
	return p.AddCallback(core.OnKeyPress, p.onKeyPress)
}

// Text returns the displayed text.
func (p *Paragraph) Text() string {
	return p.text
}

// SetText replaces the displayed text.
func (p *Paragraph) SetText(text string) {
	p.text = text
}

// FontSize returns the font size in pixels.
func (p *Paragraph) FontSize() int {
	return p.fontSize
}

func (p *Paragraph) AddToApp(h core.Host) error {
	return attachToRoot(p, h)
}
