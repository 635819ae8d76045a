package cleaner

import (
	"io/fs"
	"os"
	"path/filepath"
)

// dirSize returns the total size in bytes of all regular files under dir.
// Symbolic links are not followed, so the sum matches what removing the
// directory tree would actually free. A missing dir yields zero: there is
// nothing to remove.
func dirSize(dir string) (uint64, error) {
	if _, err := os.Lstat(dir); err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	var total uint64
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// Raced away between listing and stat; the file no longer
			// counts toward reclaimable space.
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		total += uint64(info.Size())
		return nil
	})

	return total, err
}
