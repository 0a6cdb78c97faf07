package routes

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

var layout = Layout{
	RoutesDir:   "apps/server/src/routes",
	HandlerFile: "_handlers.ts",
	Methods:     []string{"GET", "POST", "PUT", "DELETE"},
}

func createTree(t *testing.T, files ...string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for _, f := range files {
		require.NoError(t, util.WriteFile(fs, "apps/server/src/routes/"+f, nil, 0o644))
	}

	return fs
}

func TestDiscover(t *testing.T) {
	fs := createTree(t,
		"brand/_handlers.ts",
		"brand/-GET/sendResponse.ts",
		"brand/-PUT/sendResponse.ts",
		"brand/-PATCH/sendResponse.ts",
		"nohandler/-GET/sendResponse.ts",
		"user/_handlers.ts",
		"user/-DELETE/sendResponse.ts",
		"readme.md",
	)
	require.NoError(t, util.WriteFile(fs, "apps/server/src/routes/shop/_handlers.ts", nil, 0o644))
	require.NoError(t, util.WriteFile(fs, "apps/server/src/routes/shop/-GET", nil, 0o644))

	units, err := Discover(fs, layout)
	require.NoError(t, err)
	assert.Equal(t, []model.Unit{
		{Name: "brand -GET", HandlerFile: "apps/server/src/routes/brand/_handlers.ts", Dir: "apps/server/src/routes/brand/-GET"},
		{Name: "brand -PUT", HandlerFile: "apps/server/src/routes/brand/_handlers.ts", Dir: "apps/server/src/routes/brand/-PUT"},
		{Name: "user -DELETE", HandlerFile: "apps/server/src/routes/user/_handlers.ts", Dir: "apps/server/src/routes/user/-DELETE"},
	}, units)
}

func TestDiscoverEmpty(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("apps/server/src/routes", 0o755))

	units, err := Discover(fs, layout)
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestDiscoverMissingRoutes(t *testing.T) {
	_, err := Discover(memfs.New(), layout)
	assert.ErrorIs(t, err, ErrRoutesDirNotFound)
}

func TestWatchPaths(t *testing.T) {
	units := []model.Unit{
		{Name: "brand -GET", HandlerFile: "routes/brand/_handlers.ts", Dir: "routes/brand/-GET"},
		{Name: "brand -PUT", HandlerFile: "routes/brand/_handlers.ts", Dir: "routes/brand/-PUT"},
	}
	assert.Equal(t, []string{"routes", "routes/brand", "routes/brand/-GET", "routes/brand/-PUT"}, WatchPaths("routes", units))
	assert.Equal(t, []string{"routes"}, WatchPaths("routes", nil))
}
