package text

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gogpu/vg"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Families used for the generic font families.
const (
	DefaultFamily   = "Go"
	MonospaceFamily = "Go Mono"
)

// Engine is a font registry and layout factory. It implements
// vg.Text[*Layout] and is safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	families map[string][]*Face // key: lower-case family name

	outlines *Cache[outlineKey, *vg.Path]
}

var (
	defaultEngine     *Engine
	defaultEngineOnce sync.Once
)

// Default returns the process-wide engine shared by the backends.
func Default() *Engine {
	defaultEngineOnce.Do(func() {
		defaultEngine = NewEngine()
	})
	return defaultEngine
}

// NewEngine returns an engine with the Go fonts registered.
func NewEngine() *Engine {
	e := &Engine{
		families: make(map[string][]*Face),
		outlines: NewCache[outlineKey, *vg.Path](4096),
	}
	for _, data := range [][]byte{
		goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF,
		gomono.TTF, gomonobold.TTF, gomonoitalic.TTF, gomonobolditalic.TTF,
	} {
		if _, err := e.LoadFont(data); err != nil {
			// the embedded fonts are known good
			panic(err)
		}
	}
	return e
}

// FontFamily reports whether name is a registered family or a generic
// family name.
func (e *Engine) FontFamily(name string) (vg.FontFamily, bool) {
	switch strings.ToLower(name) {
	case vg.SansSerif.Name():
		return vg.SansSerif, true
	case vg.Serif.Name():
		return vg.Serif, true
	case vg.Monospace.Name():
		return vg.Monospace, true
	case vg.SystemUI.Name():
		return vg.SystemUI, true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	faces, ok := e.families[strings.ToLower(name)]
	if !ok {
		return vg.FontFamily{}, false
	}
	return vg.NewFontFamily(faces[0].Family), true
}

// LoadFont registers TrueType or OpenType data. Loading a face that is
// already registered (same family, weight and style) replaces it.
func (e *Engine) LoadFont(data []byte) (vg.FontFamily, error) {
	f, err := ParseFace(data)
	if err != nil {
		return vg.FontFamily{}, err
	}
	key := strings.ToLower(f.Family)

	e.mu.Lock()
	defer e.mu.Unlock()
	faces := e.families[key]
	replaced := false
	for i, old := range faces {
		if old.Weight == f.Weight && old.Style == f.Style {
			faces[i] = f
			replaced = true
		}
	}
	if !replaced {
		faces = append(faces, f)
	}
	e.families[key] = faces
	if replaced {
		e.outlines.Clear()
	}
	vg.Logger().Debug("vg: font loaded",
		slog.String("family", f.Family),
		slog.Int("weight", int(f.Weight)),
		slog.String("style", f.Style.String()))
	return vg.NewFontFamily(f.Family), nil
}

// Face returns the registered face of family closest to weight and
// style.
func (e *Engine) Face(family vg.FontFamily, weight vg.FontWeight, style vg.FontStyle) (*Face, error) {
	name := family.Name()
	if family.IsGeneric() {
		name = DefaultFamily
		if family == vg.Monospace {
			name = MonospaceFamily
		}
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	faces := e.families[strings.ToLower(name)]
	if len(faces) == 0 {
		return nil, fmt.Errorf("%w: %q", vg.ErrMissingFont, family.Name())
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.matches(weight, style) < best.matches(weight, style) {
			best = f
		}
	}
	return best, nil
}

// NewTextLayout shapes and wraps text.
func (e *Engine) NewTextLayout(text string, family vg.FontFamily, size, maxWidth float64, opts ...vg.LayoutOption) (*Layout, error) {
	if err := vg.ValidateLayoutRequest(size, maxWidth); err != nil {
		return nil, err
	}
	if !utf8.ValidString(text) {
		return nil, vg.InvalidInputf("text is not valid UTF-8")
	}
	cfg := vg.NewLayoutConfig(opts...)
	face, err := e.Face(family, cfg.Weight, cfg.Style)
	if err != nil {
		return nil, err
	}
	return newLayout(e, text, family, face, size, maxWidth, cfg), nil
}

type outlineKey struct {
	face *Face
	gid  uint16
	size float64
}

// outline returns the cached outline of a glyph.
func (e *Engine) outline(f *Face, gid uint16, size float64) *vg.Path {
	return e.outlines.GetOrCreate(outlineKey{f, gid, size}, func() *vg.Path {
		return f.Outline(sfntIndex(gid), size)
	})
}

var _ vg.Text[*Layout] = (*Engine)(nil)
