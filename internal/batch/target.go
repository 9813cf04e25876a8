package batch

import (
	"path/filepath"
	"strings"
)

// Target describes where batch outputs land. Every source keeps its stem;
// only the directory and optionally the extension change.
type Target struct {
	DestDir string
	// ToExt is the destination extension without the dot, already
	// normalized. Empty keeps each source's own extension.
	ToExt string
}

// DestForSource maps one source path into the target.
func (t Target) DestForSource(source string) string {
	base := filepath.Base(source)
	if t.ToExt == "" {
		return filepath.Join(t.DestDir, base)
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(t.DestDir, stem+"."+t.ToExt)
}
