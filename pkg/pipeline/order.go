package pipeline

import (
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/askiada/sort-pipeline/pkg/pipeline/model"
)

// Unmatched is the rank of a file whose stem is not a stage.
const Unmatched = math.MaxInt

// FileEntry is the base name of a directory entry.
type FileEntry string

// Stem returns the name without its final extension. Names made only of an extension,
// such as ".env", are their own stem.
func (f FileEntry) Stem() string {
	name := string(f)
	ext := filepath.Ext(name)
	if ext == name {
		return name
	}

	return strings.TrimSuffix(name, ext)
}

// Rank ranks files by the position of their stem in stages and sorts them by rank.
// The sort is stable: files sharing a rank keep the order they were listed in.
func Rank(files []FileEntry, stages StageSequence) []model.RankedFile {
	first := make(map[string]int, len(stages))
	for i := len(stages) - 1; i >= 0; i-- {
		first[stages[i]] = i
	}

	ranked := make([]model.RankedFile, 0, len(files))
	for _, file := range files {
		stem := file.Stem()
		rank, ok := first[stem]
		if !ok {
			rank = Unmatched
		}
		ranked = append(ranked, model.RankedFile{
			Name:    string(file),
			Stem:    stem,
			Rank:    rank,
			Matched: ok,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})

	return ranked
}

// Order returns files in pipeline order. It is a permutation of files.
func Order(files []FileEntry, stages StageSequence) []FileEntry {
	ranked := Rank(files, stages)
	res := make([]FileEntry, 0, len(ranked))
	for _, file := range ranked {
		res = append(res, FileEntry(file.Name))
	}

	return res
}
