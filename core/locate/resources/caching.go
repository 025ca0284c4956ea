package resources

import (
	"os"
	"path/filepath"

	"github.com/npillmayer/glyphpad/core"
)

// CacheDirPath checks and possibly creates a folder in the user's cache
// directory. The base cache directory is taken from `os.UserCacheDir()`, plus
// an application specific key (parameter `app-key` of the configuration).
// Clients may specify a sequence of folder names, which will be appended to
// the base cache path. Non-existing sub-folders will be created as necessary
// (with permissions 755).
func CacheDirPath(appkey string, subfolders ...string) (string, error) {
	tracer().Debugf("config[%s] = %s", "app-key", appkey)
	if appkey == "" {
		tracer().Errorf("application key is not set")
	}
	cachedir, err := os.UserCacheDir()
	if err != nil {
		return "", core.WrapError(err, core.EMISSING, "user cache directory not set")
	}
	subs := filepath.Join(subfolders...)
	cachedir = filepath.Join(cachedir, appkey, subs)
	return EnsureDir(cachedir)
}

// EnsureDir creates dir, including missing parents, if it does not exist yet.
func EnsureDir(dir string) (string, error) {
	_, err := os.Stat(dir)
	if os.IsNotExist(err) {
		tracer().Infof("creating directory %s", dir)
		if err = os.MkdirAll(dir, 0755); err != nil {
			return "", core.WrapError(err, core.EINVALID, "directory cannot be created: %s", dir)
		}
	} else if err != nil {
		return "", core.WrapError(err, core.EINVALID, "directory not accessible: %s", dir)
	}
	return dir, nil
}
