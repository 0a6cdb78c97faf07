// Package routes discovers the units of a route tree: every route directory holding a handler file,
// paired with each of its HTTP method directories.
package routes

import (
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/pkg/errors"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

var ErrRoutesDirNotFound = errors.New("routes directory not found")

const methodDirPrefix = "-"

// Layout describes where handler files and method directories live.
type Layout struct {
	RoutesDir   string
	HandlerFile string
	Methods     []string
}

// Discover lists the units under layout.RoutesDir, in listing order then method order.
// A route is paired with method M when ROUTE/-M is a directory and ROUTE/<HandlerFile> exists.
func Discover(fs billy.Filesystem, layout Layout) ([]model.Unit, error) {
	infos, err := fs.ReadDir(layout.RoutesDir)
	if err != nil {
		if os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrap(ErrRoutesDirNotFound, layout.RoutesDir)
		}
		return nil, errors.Wrapf(err, "unable to read routes directory %s", layout.RoutesDir)
	}

	units := []model.Unit{}
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		routeDir := path.Join(layout.RoutesDir, info.Name())
		handlerFile := path.Join(routeDir, layout.HandlerFile)
		if !isFile(fs, handlerFile) {
			continue
		}
		for _, method := range layout.Methods {
			methodDirName := methodDirPrefix + method
			methodDir := path.Join(routeDir, methodDirName)
			if !isDir(fs, methodDir) {
				continue
			}
			units = append(units, model.Unit{
				Name:        info.Name() + " " + methodDirName,
				HandlerFile: handlerFile,
				Dir:         methodDir,
			})
		}
	}

	return units, nil
}

func isDir(fs billy.Filesystem, p string) bool {
	info, err := fs.Stat(p)

	return err == nil && info.IsDir()
}

func isFile(fs billy.Filesystem, p string) bool {
	info, err := fs.Stat(p)

	return err == nil && !info.IsDir()
}

// WatchPaths returns the directories to watch for changes: the routes directory, so that new routes
// are noticed, every route directory holding a handler file and every method directory.
func WatchPaths(routesDir string, units []model.Unit) []string {
	seen := map[string]struct{}{routesDir: {}}
	res := []string{routesDir}
	for _, unit := range units {
		for _, p := range []string{path.Dir(unit.HandlerFile), unit.Dir} {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			res = append(res, p)
		}
	}

	return res
}
