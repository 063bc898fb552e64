package core

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/electripy/electripy/pkg/layout"
)

type textElement struct {
	testElement
	text string
}

func (e *textElement) Text() string { return e.text }

func TestRender(t *testing.T) {
	root := newTestElement(t, KindButton, Options{Class: "primary"})
	if err := root.AddCallback(OnClick, Noop); err != nil {
		t.Fatal(err)
	}

	label := &textElement{text: "OK"}
	if err := label.Init(label, Options{Kind: string(KindParagraph), Class: "caption", Parent: root, Position: layout.Frac(0.1, 0.5)}); err != nil {
		t.Fatal(err)
	}
	icon := newTestElement(t, KindImage, Options{Parent: root, Position: layout.Px(4, 2)})
	icon.SetAttr("src", "https://example.com/a.png")
	icon.SetAttr("alt", "add")
	icon.SetAttr("loading", "lazy")

	got := Render(root)
	want := RenderedNode{
		Kind:      KindButton,
		ID:        "7843c",
		Class:     "primary",
		Style:     "position: relative; left: 0px; bottom: 0px",
		Position:  []float64{0, 0},
		Callbacks: []string{"7843c_onClick_callback"},
		Children: []RenderedNode{
			{
				Kind:     KindParagraph,
				ID:       "7f5d1",
				Class:    "caption",
				Style:    "position: absolute; left: 10%; bottom: 50%",
				Text:     "OK",
				Position: []float64{0.1, 0.5},
			},
			{
				Kind:     KindImage,
				ID:       HashID(KindImage, ""),
				Style:    "position: absolute; left: 4px; bottom: 2px",
				Src:      "https://example.com/a.png",
				Alt:      "add",
				Attrs:    map[string]string{"loading": "lazy"},
				Position: []float64{4, 2},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Render (-want +got):\n%s", diff)
	}

	b, err := json.Marshal(got.Children[0])
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"src", "alt", "attrs", "callbacks", "children"} {
		if _, ok := m[key]; ok {
			t.Errorf("empty %q should be omitted from JSON", key)
		}
	}
}
