package db

import (
	"errors"
	"io/fs"
	"os"
)

// DBTotalSize returns the combined size of the database file and its -wal and
// -shm companions. Missing files count as zero.
func DBTotalSize(dbPath string) (int64, error) {
	var total int64
	for _, path := range []string{dbPath, dbPath + "-wal", dbPath + "-shm"} {
		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, err
		}
		total += info.Size()
	}
	return total, nil
}

// ReportSize publishes the size of the database at dbPath under name.
func ReportSize(name, dbPath string) error {
	size, err := DBTotalSize(dbPath)
	if err != nil {
		return err
	}
	DBSizeLog(name, size)
	return nil
}
