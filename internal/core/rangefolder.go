package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/laporte-eng/jobnav/pkg/models"
	"github.com/maruel/natural"
	"github.com/spf13/afero"
)

// truncatedPrefixLen is how many leading characters of the lower bound are
// glued onto a truncated upper bound ("123000-199" -> 123199).
const truncatedPrefixLen = 3

// ParseRangeFolderName reads a "<low>-<high>" directory name. Names that do
// not split on exactly one dash, or whose parts are not integers, return
// ok == false.
//
// With models.RangeTruncated the raw upper bound is prefixed with the first
// three characters of the raw lower bound before parsing. The rule is kept
// exactly as the picture share uses it: it silently misreads lower bounds
// shorter than three characters and ranges that cross a 1000-job boundary.
func ParseRangeFolderName(name string, conv models.RangeConvention) (low, high int, ok bool) {
	parts := strings.Split(name, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	rawLow, rawHigh := parts[0], parts[1]
	if conv == models.RangeTruncated {
		rawHigh = rawLow[:min(truncatedPrefixLen, len(rawLow))] + rawHigh
	}

	low, err := strconv.Atoi(strings.TrimSpace(rawLow))
	if err != nil {
		return 0, 0, false
	}
	high, err = strconv.Atoi(strings.TrimSpace(rawHigh))
	if err != nil {
		return 0, 0, false
	}
	return low, high, true
}

// listSubdirs returns the names of root's immediate subdirectories in the
// order the file system enumerates them.
func listSubdirs(fsys afero.Fs, root string) ([]string, error) {
	f, err := fsys.Open(root)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	infos, err := f.Readdir(-1)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		name := info.Name()
		if info.Mode()&os.ModeSymlink != 0 {
			// Readdir reports the link itself; a linked range folder counts
			// when its target is a directory.
			target, err := fsys.Stat(filepath.Join(root, name))
			if err != nil {
				continue
			}
			info = target
		}
		if info.IsDir() {
			names = append(names, name)
		}
	}
	return names, nil
}

// FindRangeFolderRoot scans root's subdirectories and returns the first one
// whose name encodes a range containing job. Malformed names are skipped.
func FindRangeFolderRoot(fsys afero.Fs, job models.JobNumber, root string, conv models.RangeConvention) (string, error) {
	names, err := listSubdirs(fsys, root)
	if err != nil {
		return "", &models.PathError{
			Kind:  models.KindRangeRootNotFound,
			Input: string(job),
			Root:  root,
			Err:   fmt.Errorf("listing %s: %w", root, err),
		}
	}

	n := job.Int()
	for _, name := range names {
		low, high, ok := ParseRangeFolderName(name, conv)
		if !ok {
			continue
		}
		if low <= n && n <= high {
			return filepath.Join(root, name), nil
		}
	}
	return "", &models.PathError{Kind: models.KindRangeRootNotFound, Input: string(job), Root: root}
}

// ListRangeFolders returns every well-formed range folder under root in
// natural name order, so "9000-9999" sorts before "10000-10999".
func ListRangeFolders(fsys afero.Fs, root string, conv models.RangeConvention) ([]models.RangeFolder, error) {
	names, err := listSubdirs(fsys, root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &models.PathError{Kind: models.KindDestinationNotFound, Input: root, Err: err}
		}
		return nil, fmt.Errorf("listing %s: %w", root, err)
	}

	sort.Slice(names, func(i, j int) bool { return natural.Less(names[i], names[j]) })

	folders := make([]models.RangeFolder, 0, len(names))
	for _, name := range names {
		low, high, ok := ParseRangeFolderName(name, conv)
		if !ok {
			continue
		}
		folders = append(folders, models.RangeFolder{
			Name: name,
			Path: filepath.Join(root, name),
			Low:  low,
			High: high,
		})
	}
	return folders, nil
}

// VerifyPath returns path unchanged if it exists on fsys, and a
// KindDestinationNotFound error carrying path otherwise.
func VerifyPath(fsys afero.Fs, path string) (string, error) {
	exists, err := afero.Exists(fsys, path)
	if err != nil {
		return "", &models.PathError{Kind: models.KindDestinationNotFound, Input: path, Err: err}
	}
	if !exists {
		return "", &models.PathError{Kind: models.KindDestinationNotFound, Input: path}
	}
	return path, nil
}
