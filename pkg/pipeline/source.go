package pipeline

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// ReadHandler reads the handler file at path and extracts its pipeline.
func ReadHandler(fs billy.Filesystem, path string) (StageSequence, error) {
	if fs == nil {
		return nil, ErrFilesystemMustBeSet
	}
	content, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, newReadError(opReadFile, path, err)
	}

	return Extract(string(content)), nil
}

// ListEntries returns the base names of the entries of dir, in the order the filesystem lists them.
func ListEntries(fs billy.Filesystem, dir string) ([]FileEntry, error) {
	if fs == nil {
		return nil, ErrFilesystemMustBeSet
	}
	infos, err := fs.ReadDir(dir)
	if err != nil {
		return nil, newReadError(opReadDir, dir, err)
	}

	entries := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, FileEntry(info.Name()))
	}

	return entries, nil
}
