// Package detect provides best-effort type detection for source files.
// Its output is advisory only: it is surfaced in plan reports but never
// consulted by strategy or backend selection.
package detect

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// Detected describes what could be learned about a file's type.
type Detected struct {
	// MIME is the content-sniffed media type, empty when sniffing failed.
	MIME string `json:"mime,omitempty"`
	// ExtHint is the lowercased file extension without the leading dot.
	ExtHint string `json:"extension,omitempty"`
	// FileMIME is the media type reported by the file(1) utility, empty
	// when the utility is unavailable or fails.
	FileMIME string `json:"file_mime,omitempty"`
}

// Path inspects a file. It never fails; each probe degrades independently
// to an empty value on error.
func Path(path string) Detected {
	var d Detected
	if mt, err := mimetype.DetectFile(path); err == nil {
		d.MIME = mt.String()
	}
	if ext := filepath.Ext(path); ext != "" {
		d.ExtHint = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	d.FileMIME = fileMIME(path)
	return d
}

func fileMIME(path string) string {
	out, err := exec.Command("file", "--brief", "--mime-type", path).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
