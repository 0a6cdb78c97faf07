package pipeline

import (
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

func createFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for path, content := range files {
		require.NoError(t, util.WriteFile(fs, path, []byte(content), 0o644))
	}

	return fs
}

const brandHandlers = `export default async function (fastify) {
  fastify.get('/', {}, async (request, reply) => {
    return pipe(
      start(extractParams(request)),
      bypass(matchId),
      bypass(getUser),
      bypass(checkUser)
    );
  });
}
`
