package pipeline

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

func entries(names ...string) []FileEntry {
	res := make([]FileEntry, 0, len(names))
	for _, name := range names {
		res = append(res, FileEntry(name))
	}

	return res
}

func TestStem(t *testing.T) {
	tcs := map[string]struct {
		name     string
		expected string
	}{
		"extension":      {name: "getUser.ts", expected: "getUser"},
		"last extension": {name: "getUser.test.ts", expected: "getUser.test"},
		"no extension":   {name: "Makefile", expected: "Makefile"},
		"dot file":       {name: ".env", expected: ".env"},
		"trailing dot":   {name: "getUser.", expected: "getUser"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FileEntry(tc.name).Stem())
		})
	}
}

func TestOrder(t *testing.T) {
	tcs := map[string]struct {
		files    []FileEntry
		stages   StageSequence
		expected []FileEntry
	}{
		"route directory": {
			files:    entries("checkUser.ts", "extractParams.ts", "unrelated.ts", "getUser.ts", "matchId.ts"),
			stages:   StageSequence{"extractParams", "matchId", "getUser", "checkUser"},
			expected: entries("extractParams.ts", "matchId.ts", "getUser.ts", "checkUser.ts", "unrelated.ts"),
		},
		"unmatched keep listing order": {
			files:    entries("b.ts", "x.ts", "a.ts", "y.ts"),
			stages:   StageSequence{"a", "b"},
			expected: entries("a.ts", "b.ts", "x.ts", "y.ts"),
		},
		"no stages": {
			files:    entries("c.ts", "a.ts", "b.ts"),
			stages:   StageSequence{},
			expected: entries("c.ts", "a.ts", "b.ts"),
		},
		"no files": {
			files:    entries(),
			stages:   StageSequence{"a"},
			expected: entries(),
		},
		"shared stem": {
			files:    entries("b.ts", "a.test.ts", "a.js", "x.ts", "a.ts"),
			stages:   StageSequence{"a", "b"},
			expected: entries("a.js", "a.ts", "b.ts", "a.test.ts", "x.ts"),
		},
		"duplicated stage uses first index": {
			files:    entries("b.ts", "a.ts", "c.ts"),
			stages:   StageSequence{"a", "b", "a", "c"},
			expected: entries("a.ts", "b.ts", "c.ts"),
		},
		"case sensitive": {
			files:    entries("GetUser.ts", "getUser.ts"),
			stages:   StageSequence{"getUser"},
			expected: entries("getUser.ts", "GetUser.ts"),
		},
		"stage without file": {
			files:    entries("c.ts", "a.ts"),
			stages:   StageSequence{"a", "b", "c"},
			expected: entries("a.ts", "c.ts"),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Order(tc.files, tc.stages))
		})
	}
}

func TestRank(t *testing.T) {
	got := Rank(entries("b.ts", "x.ts", "a.ts"), StageSequence{"a", "b"})
	expected := []model.RankedFile{
		{Name: "a.ts", Stem: "a", Rank: 0, Matched: true},
		{Name: "b.ts", Stem: "b", Rank: 1, Matched: true},
		{Name: "x.ts", Stem: "x", Rank: Unmatched, Matched: false},
	}
	assert.Equal(t, expected, got)
}

func TestOrderProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42)) //nolint:gosec
	pool := []string{"a", "b", "c", "d", "e"}
	for iter := 0; iter < 200; iter++ {
		files := make([]FileEntry, 0)
		for i := 0; i < rnd.Intn(8); i++ {
			files = append(files, FileEntry(fmt.Sprintf("%s.%d", pool[rnd.Intn(len(pool))], i)))
		}
		stages := StageSequence{}
		for i := 0; i < rnd.Intn(4); i++ {
			stages = append(stages, pool[rnd.Intn(len(pool))])
		}

		got := Order(files, stages)
		assert.ElementsMatch(t, files, got)

		listed := make(map[FileEntry]int, len(files))
		for i, f := range files {
			listed[f] = i
		}
		for i := 1; i < len(got); i++ {
			prev, curr := stages.Index(got[i-1].Stem()), stages.Index(got[i].Stem())
			if prev == -1 {
				// unmatched files come last, in listing order
				assert.Equal(t, -1, curr)
				assert.Less(t, listed[got[i-1]], listed[got[i]])
				continue
			}
			if curr == -1 {
				continue
			}
			assert.LessOrEqual(t, prev, curr)
			if prev == curr {
				assert.Less(t, listed[got[i-1]], listed[got[i]])
			}
		}
	}
}
