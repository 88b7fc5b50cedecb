//go:build !linux

package storage

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where no portable birth
// time is available.
func creationTime(_ string, info os.FileInfo) time.Time {
	return info.ModTime()
}

func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}
