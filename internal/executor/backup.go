package executor

import (
	"fmt"
	"os"
)

// maxBackupSlots bounds the numbered backup suffixes tried after ".bak".
const maxBackupSlots = 1000

// rotateBackup moves path aside to the first free backup slot: path.bak,
// then path.bak.1 through path.bak.1000. The original path is left vacant.
func rotateBackup(path string) (string, error) {
	candidate := path + ".bak"
	if moved, err := renameIfVacant(path, candidate); err != nil {
		return "", err
	} else if moved {
		return candidate, nil
	}
	for i := 1; i <= maxBackupSlots; i++ {
		candidate = fmt.Sprintf("%s.bak.%d", path, i)
		if moved, err := renameIfVacant(path, candidate); err != nil {
			return "", err
		} else if moved {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrBackupExhausted, path)
}

func renameIfVacant(from, to string) (bool, error) {
	if _, err := os.Lstat(to); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking backup slot %s: %w", to, err)
	}
	if err := os.Rename(from, to); err != nil {
		return false, fmt.Errorf("rotating backup to %s: %w", to, err)
	}
	return true, nil
}
