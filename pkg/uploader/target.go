package uploader

import (
	"fmt"
	"os"

	"github.com/rdmup/rdmup/internal/utils"
)

// Target is one local file queued for upload. Key is the logical name
// on the record: the path relative to the upload root, or the bare
// filename when the root is itself a file.
type Target struct {
	Path string
	Key  string
	Size int64
}

// BuildTargets derives the upload targets for files under base.
func BuildTargets(files []string, base string) ([]Target, error) {
	targets := make([]Target, 0, len(files))
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", file, err)
		}
		targets = append(targets, Target{
			Path: file,
			Key:  utils.RelativeKey(file, base),
			Size: info.Size(),
		})
	}
	return targets, nil
}
