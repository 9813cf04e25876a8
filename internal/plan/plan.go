// Package plan builds immutable execution plans. A Plan records what will
// happen to one source/destination pair: rename, copy, or convert, and for
// conversions which external backend performs the work. Construction is
// pure apart from best-effort type sniffing; nothing is written to disk.
package plan

import (
	"path/filepath"
	"sort"
	"strings"

	"movex/internal/detect"
)

// Strategy is the top-level operation kind.
type Strategy string

const (
	StrategyRename  Strategy = "rename"
	StrategyCopy    Strategy = "copy"
	StrategyConvert Strategy = "convert"
)

// Backend identifies the external tool family performing a conversion.
// The zero value means no backend supports the conversion.
type Backend string

const (
	BackendNone        Backend = ""
	BackendImageMagick Backend = "imagemagick"
	BackendFfmpeg      Backend = "ffmpeg"
	BackendLibreOffice Backend = "libreoffice"
)

// MediaKind classifies a destination extension.
type MediaKind string

const (
	KindImage    MediaKind = "image"
	KindAudio    MediaKind = "audio"
	KindVideo    MediaKind = "video"
	KindDocument MediaKind = "document"
	KindOther    MediaKind = "other"
)

// Plan describes one source to destination operation. It is immutable once
// built and consumed exactly once by the executor.
type Plan struct {
	Source      string
	Destination string
	Detected    detect.Detected
	Strategy    Strategy
	Backend     Backend
	Notes       []string
	MoveSource  bool
	Backup      bool
	Options     Options
	DestExt     string
	DestKind    MediaKind
}

// Build constructs a Plan. It fails only on invalid options or when source
// and destination are the same path; everything else surfaces as advisory
// notes on the returned Plan.
func Build(source, destination string, moveSource, backup bool, opts Options) (*Plan, error) {
	if source == destination {
		return nil, ErrSamePath
	}
	if opts.Preference == "" {
		opts.Preference = PreferenceAuto
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	sourceExt := NormalizeExt(source)
	destExt := NormalizeExt(destination)
	destKind := classifyKind(destExt)

	strategy := StrategyConvert
	if sourceExt != "" && sourceExt == destExt {
		if moveSource {
			strategy = StrategyRename
		} else {
			strategy = StrategyCopy
		}
	}

	backend := BackendNone
	if strategy == StrategyConvert {
		backend = selectBackend(sourceExt, destExt)
	}

	p := &Plan{
		Source:      source,
		Destination: destination,
		Detected:    detect.Path(source),
		Strategy:    strategy,
		Backend:     backend,
		MoveSource:  moveSource,
		Backup:      backup,
		Options:     opts,
		DestExt:     destExt,
		DestKind:    destKind,
	}
	p.Notes = buildNotes(p, sourceExt)
	return p, nil
}

// NormalizeExt returns the lowercased extension of path without the leading
// dot, with legacy spellings folded onto their canonical form.
func NormalizeExt(path string) string {
	return CanonicalExt(filepath.Ext(path))
}

// CanonicalExt normalizes a bare extension, with or without a leading dot.
func CanonicalExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "jpeg":
		return "jpg"
	case "htm":
		return "html"
	}
	return ext
}

// selectBackend maps a (source ext, dest ext) pair onto the tool that can
// perform the conversion. First matching rule wins; file content is never
// consulted.
func selectBackend(sourceExt, destExt string) Backend {
	switch {
	case imageExts[sourceExt] && imageExts[destExt]:
		return BackendImageMagick
	case isPDFImagePair(sourceExt, destExt):
		return BackendImageMagick
	case mediaExt(sourceExt) && mediaExt(destExt):
		return BackendFfmpeg
	case documentExts[sourceExt] && destExt == "pdf":
		return BackendLibreOffice
	}
	return BackendNone
}

func classifyKind(ext string) MediaKind {
	switch {
	case imageExts[ext]:
		return KindImage
	case audioExts[ext]:
		return KindAudio
	case videoExts[ext]:
		return KindVideo
	case documentExts[ext] || ext == "pdf":
		return KindDocument
	}
	return KindOther
}

func isPDFImagePair(sourceExt, destExt string) bool {
	return (sourceExt == "pdf" && imageExts[destExt]) ||
		(destExt == "pdf" && imageExts[sourceExt])
}

func mediaExt(ext string) bool {
	return audioExts[ext] || videoExts[ext]
}

var imageExts = map[string]bool{
	"jpg": true, "png": true, "gif": true, "webp": true, "bmp": true,
	"tiff": true, "tif": true, "heic": true, "avif": true,
}

var audioExts = map[string]bool{
	"mp3": true, "wav": true, "flac": true, "aac": true, "ogg": true,
	"m4a": true, "opus": true,
}

var videoExts = map[string]bool{
	"mp4": true, "mov": true, "mkv": true, "webm": true, "avi": true,
}

var documentExts = map[string]bool{
	"doc": true, "docx": true, "ppt": true, "pptx": true, "xls": true,
	"xlsx": true, "odt": true, "odp": true, "ods": true, "rtf": true,
	"txt": true,
}

// supportedDestExts returns every destination extension some backend can
// produce, used for typo suggestions.
func supportedDestExts() []string {
	var exts []string
	for ext := range imageExts {
		exts = append(exts, ext)
	}
	for ext := range audioExts {
		exts = append(exts, ext)
	}
	for ext := range videoExts {
		exts = append(exts, ext)
	}
	exts = append(exts, "pdf")
	sort.Strings(exts)
	return exts
}

func (s Strategy) String() string { return string(s) }

func (b Backend) String() string {
	if b == BackendNone {
		return "none"
	}
	return string(b)
}

func (k MediaKind) String() string { return string(k) }
