package fontregistry

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/gogpu/gg/text"
	"github.com/npillmayer/glyphpad/core"
	"github.com/npillmayer/glyphpad/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Resource is a live font resource.
type Resource struct {
	Name   string
	Path   string // temporary file holding the font's data
	Source *text.FontSource
}

// Registry is a type for holding the font resources of an editor.
type Registry struct {
	sync.Mutex
	dir      string
	live     map[string]*Resource
	faces    map[string]text.Face
	fallback *text.FontSource
}

// NewRegistry creates a registry which materializes font resources in
// directory dir. If dir is empty, the system's temporary directory is used.
func NewRegistry(dir string) *Registry {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Registry{
		dir:   dir,
		live:  make(map[string]*Resource),
		faces: make(map[string]text.Face),
	}
}

// Acquire makes font data available under name. A resource previously
// acquired under the same name is released first, regardless of whether the
// new resource can be created. If data cannot be parsed, an error with code
// core.EINVALID is returned and name is not live afterwards.
func (fr *Registry) Acquire(name string, data []byte) (*Resource, error) {
	fr.Lock()
	defer fr.Unlock()
	fr.release(name)
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font %s cannot be loaded: %v", name, err)
	}
	f, err := os.CreateTemp(fr.dir, font.NormalizeFontname(name)+"-*.ttf")
	if err != nil {
		src.Close()
		return nil, core.WrapError(err, core.EINTERNAL, "cannot create font resource for %s", name)
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(f.Name())
		src.Close()
		return nil, core.WrapError(err, core.EINTERNAL, "cannot write font resource for %s", name)
	}
	res := &Resource{Name: name, Path: f.Name(), Source: src}
	fr.live[name] = res
	tracer().Debugf("registry acquired font %s as %s", name, res.Path)
	return res, nil
}

// Release releases the resource registered under name, if any.
func (fr *Registry) Release(name string) {
	fr.Lock()
	defer fr.Unlock()
	fr.release(name)
}

// ReleaseAll releases every live resource.
func (fr *Registry) ReleaseAll() {
	fr.Lock()
	defer fr.Unlock()
	for name := range fr.live {
		fr.release(name)
	}
}

func (fr *Registry) release(name string) {
	res, ok := fr.live[name]
	if !ok {
		return
	}
	delete(fr.live, name)
	for key, face := range fr.faces {
		if face.Source() == res.Source {
			delete(fr.faces, key)
		}
	}
	res.Source.Close()
	if err := os.Remove(res.Path); err != nil && !os.IsNotExist(err) {
		tracer().Errorf("cannot remove font resource %s: %v", res.Path, err)
	}
	tracer().Debugf("registry released font %s", name)
}

// Lookup returns the live resource for name.
func (fr *Registry) Lookup(name string) (*Resource, bool) {
	fr.Lock()
	defer fr.Unlock()
	res, ok := fr.live[name]
	return res, ok
}

// Live returns the names of all live resources, sorted.
func (fr *Registry) Live() []string {
	fr.Lock()
	defer fr.Unlock()
	names := make([]string, 0, len(fr.live))
	for name := range fr.live {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Face returns a face of the font registered under name, at a given size.
// Faces are cached until their resource is released.
//
// If no resource is live for name, Face will derive a face from a
// system-wide fallback font and return it, together with an error.
func (fr *Registry) Face(name string, size float64) (text.Face, error) {
	fr.Lock()
	defer fr.Unlock()
	key := fmt.Sprintf("%s-%.2f", name, size)
	if face, ok := fr.faces[key]; ok {
		return face, nil
	}
	if res, ok := fr.live[name]; ok {
		face := res.Source.Face(size)
		fr.faces[key] = face
		tracer().Debugf("font registry caches %s", key)
		return face, nil
	}
	err := core.Error(core.EMISSING, "font %s not found in registry", name)
	if fr.fallback == nil {
		src, ferr := text.NewFontSource(font.FallbackFont().Binary)
		if ferr != nil {
			return nil, core.WrapError(ferr, core.EINTERNAL, "cannot load fallback font")
		}
		fr.fallback = src
	}
	return fr.fallback.Face(size), err
}

// LogFontList is a helper function to dump the list of live fonts
// to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- live fonts ---")
	for _, name := range fr.Live() {
		res, _ := fr.Lookup(name)
		tracer().Infof("font [%s] = %s", name, res.Path)
	}
	tracer().Infof("------------------")
	tracer().SetTraceLevel(level)
}
