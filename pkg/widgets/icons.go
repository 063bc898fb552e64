package widgets

import (
	"maps"
	"slices"
	"sync"

	"github.com/electripy/electripy/pkg/errors"
)

const iconBaseURL = "https://img.icons8.com/material-outlined/24/000000/"

var builtinIcons = map[string]string{
	"add":      "add",
	"delete":   "delete-forever",
	"edit":     "edit",
	"save":     "save",
	"cancel":   "cancel",
	"play":     "play",
	"pause":    "pause",
	"stop":     "stop",
	"next":     "next",
	"previous": "previous",
	"up":       "up-arrow",
	"down":     "down-arrow",
	"left":     "left-arrow",
	"right":    "right-arrow",
	"check":    "checkmark",
	"uncheck":  "cancel",
}

// Icons maps icon names to image URLs.
type Icons struct {
	mu   sync.RWMutex
	urls map[string]string
}

// DefaultIcons returns a new table holding the built-in icons.
func DefaultIcons() *Icons {
	icons := &Icons{urls: make(map[string]string, len(builtinIcons))}
	for name, file := range builtinIcons {
		icons.urls[name] = iconBaseURL + file + ".png"
	}
	return icons
}

// Add registers or replaces an icon.
func (i *Icons) Add(name, url string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.urls == nil {
		i.urls = make(map[string]string)
	}
	i.urls[name] = url
}

// URL returns the URL of the named icon, or errors.ErrUnknownIconName.
func (i *Icons) URL(name string) (string, error) {
	i.mu.RLock()
	url, ok := i.urls[name]
	i.mu.RUnlock()
	if !ok {
		return "", errors.Errorf("widgets.Icons", errors.KindUnknownIcon, name,
			"%w: %q", errors.ErrUnknownIconName, name)
	}
	return url, nil
}

// Names returns the icon names, sorted.
func (i *Icons) Names() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Sorted(maps.Keys(i.urls))
}
