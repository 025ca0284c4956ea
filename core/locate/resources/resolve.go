package resources

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/glyphpad/core"
)

type resourceType int

// resource types
const (
	unknownResourceType resourceType = iota
	fontResourceType
	fileResourceType
)

// NotFound returns an application error for a missing resource.
func NotFound(res string, rtype resourceType) error {
	e := fmt.Errorf("resource missing: %v", res)
	var s string
	switch rtype {
	case fontResourceType:
		s = fmt.Sprintf("font not found: %s", res)
	case fileResourceType:
		s = fmt.Sprintf("file not found: %s", res)
	default:
		s = fmt.Sprintf("resource not found: %s", res)
	}
	return core.WrapError(e, core.EMISSING, "%s", s)
}

// --- Font files ------------------------------------------------------------

type pathPlusErr struct {
	path string
	err  error
}

// FontFilePromise is returned by ResolveFontFile.
type FontFilePromise interface {
	Path() (string, error)                     // blocks until resolved
	Await(ctx context.Context) (string, error) // blocks until resolved or ctx is done
}

type fontFileLoader struct {
	await func(ctx context.Context) (string, error)
}

func (loader fontFileLoader) Path() (string, error) {
	return loader.await(context.Background())
}

func (loader fontFileLoader) Await(ctx context.Context) (string, error) {
	return loader.await(ctx)
}

// ResolveFontFile resolves a font argument to a file path. name may either be
// the path of a font file or the name of a font installed on the system,
// e.g. "DejaVuSans" or "Arial.ttf".
func ResolveFontFile(name string) FontFilePromise {
	ch := make(chan pathPlusErr, 1)
	go func(ch chan<- pathPlusErr) {
		defer close(ch)
		result := pathPlusErr{}
		if name == "" {
			result.err = NotFound("<empty>", fontResourceType)
			ch <- result
			return
		}
		if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
			tracer().Debugf("font %s is a file", name)
			result.path = name
			ch <- result
			return
		}
		fpath, err := findfont.Find(name) // try to find as system font
		if err == nil && fpath != "" {
			tracer().Debugf("%s is a system font at %s", name, fpath)
			result.path = fpath
		} else {
			tracer().Infof("font %s not found: %v", name, err)
			result.err = NotFound(name, fontResourceType)
		}
		ch <- result
	}(ch)
	return fontFileLoader{
		await: func(ctx context.Context) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case r := <-ch:
				return r.path, r.err
			}
		},
	}
}

// --- Raw bytes -------------------------------------------------------------

type bytesPlusErr struct {
	data []byte
	err  error
}

// BytesPromise is returned by ReadBytes.
type BytesPromise interface {
	Await(ctx context.Context) ([]byte, error)
}

type bytesLoader struct {
	await func(ctx context.Context) ([]byte, error)
}

func (loader bytesLoader) Await(ctx context.Context) ([]byte, error) {
	return loader.await(ctx)
}

// ReadBytes reads r to the end in a separate goroutine. The reader is
// consumed by the goroutine only; clients must not touch it until the promise
// has resolved.
//
// If the context of Await is done before reading completes, Await returns the
// context's error and the bytes are discarded.
func ReadBytes(r io.Reader) BytesPromise {
	ch := make(chan bytesPlusErr, 1)
	go func(ch chan<- bytesPlusErr) {
		defer close(ch)
		if r == nil {
			ch <- bytesPlusErr{err: NotFound("<no input>", fileResourceType)}
			return
		}
		data, err := io.ReadAll(r)
		if err != nil {
			err = core.WrapError(err, core.EINVALID, "cannot read input: %v", err)
		}
		ch <- bytesPlusErr{data: data, err: err}
	}(ch)
	return bytesLoader{
		await: func(ctx context.Context) ([]byte, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.data, r.err
			}
		},
	}
}
