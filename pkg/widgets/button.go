package widgets

import (
	"github.com/electripy/electripy/pkg/assets"
	"github.com/electripy/electripy/pkg/core"
	"github.com/electripy/electripy/pkg/layout"
)

// Class names given to the parts of a Button.
const (
	ButtonTextClass = "btn-text"
	ButtonLogoClass = "btn-logo"
)

// DefaultButtonSize is the button size used when none is given.
var DefaultButtonSize = Size{Width: 100, Height: 50}

// Child positions inside a Button.
var (
	buttonTextPosition = layout.Frac(0.1, 0.5)
	buttonLogoPosition = layout.Frac(0.9, 0.5)
)

// ButtonOptions configures NewButton.
type ButtonOptions struct {
	Common
	// Text is the label.
	Text string
	// OnClick is exposed to the frontend as the onClick callback.
	OnClick core.Callback
	// FontSize of the label. Defaults to DefaultFontSize if zero.
	FontSize int
	// Size defaults to DefaultButtonSize if zero.
	Size Size
	// Icon names an entry of Icons. Empty means no icon.
	Icon string
	// Icons is the icon table. Nil means DefaultIcons().
	Icons *Icons
	// Loader resolves the icon image.
	Loader assets.Loader
}

// Button is a clickable label with an optional icon.
//
// Example:
//
//	widgets.NewButton(widgets.ButtonOptions{
//	    Text:    "Save",
//	    Icon:    "save",
//	    OnClick: save,
//	})
type Button struct {
	core.Node
	text     string
	onClick  core.Callback
	fontSize int
	size     Size
	icon     string
	iconURL  string
	registry *core.Registry
	loader   assets.Loader

	label *Paragraph
	logo  *Image
}

// NewButton builds a Button. An unknown icon fails with
// errors.ErrUnknownIconName before anything is constructed.
func NewButton(opts ButtonOptions) (*Button, error) {
	b := &Button{
		text:     opts.Text,
		onClick:  opts.OnClick,
		fontSize: opts.FontSize,
		size:     opts.Size.orDefault(DefaultButtonSize),
		icon:     opts.Icon,
		registry: opts.Registry,
		loader:   opts.Loader,
	}
	if b.icon != "" {
		icons := opts.Icons
		if icons == nil {
			icons = DefaultIcons()
		}
		url, err := icons.URL(b.icon)
		if err != nil {
			return nil, err
		}
		b.iconURL = url
	}
	if err := b.Init(b, opts.options(core.KindButton)); err != nil {
		return nil, err
	}
	return b, nil
}

// Setup attaches the label and the icon, then sizes the button.
func (b *Button) Setup() error {
	label, err := NewParagraph(ParagraphOptions{
		Common: Common{
			Class:    ButtonTextClass,
			Position: buttonTextPosition,
			Parent:   b,
			Registry: b.registry,
		},
		Text:     b.text,
		FontSize: b.fontSize,
	})
	if err != nil {
		return err
	}
	b.label = label

	if b.iconURL != "" {
		logo, err := NewImage(ImageOptions{
			Common: Common{
				Class:    ButtonLogoClass,
				Position: buttonLogoPosition,
				Parent:   b,
				Registry: b.registry,
			},
			Src:    b.iconURL,
			Alt:    b.icon,
			Loader: b.loader,
		})
		if err != nil {
			return err
		}
		b.logo = logo
	}

	b.AddStyle(b.size.decls()...)
	return b.AddCallback(core.OnClick, b.onClick)
}

// Text returns the label text.
func (b *Button) Text() string {
	return b.label.Text()
}

// SetText replaces the label text.
func (b *Button) SetText(text string) {
	b.label.SetText(text)
}

// Label returns the label element.
func (b *Button) Label() *Paragraph {
	return b.label
}

// Logo returns the icon element, or nil without an icon.
func (b *Button) Logo() *Image {
	return b.logo
}

// Icon returns the icon name.
func (b *Button) Icon() string {
	return b.icon
}

func (b *Button) AddToApp(h core.Host) error {
	return attachToRoot(b, h)
}
