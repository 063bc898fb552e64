// Package widgets provides the built-in element kinds: Body, Button,
// Paragraph and Image.
//
// Every constructor takes an options struct embedding [Common] and returns
// the fully set up element, or the first error raised while building it:
//
//	body, err := widgets.NewBody(widgets.BodyOptions{Padding: [2]int{10, 10}})
//	if err != nil {
//	    return err
//	}
//	ok, err := widgets.NewButton(widgets.ButtonOptions{
//	    Common:  widgets.Common{Parent: body, Position: layout.Frac(0.5, 0.5)},
//	    Text:    "OK",
//	    Icon:    "check",
//	    OnClick: onOK,
//	})
//
// A Button composes a Paragraph label and, when an icon is named, an Image
// child. Icons are looked up in an [Icons] table; [DefaultIcons] holds the
// built-in names.
//
// Images block in Setup while their source is loaded through an
// [assets.Loader]. Any fetch or decode failure fails the construction.
package widgets
