package constants

import "strings"

// FileKind is the ingestion path a file takes.
type FileKind string

const (
	PDF   FileKind = "PDF"
	IMAGE FileKind = "IMAGE"
	AUDIO FileKind = "AUDIO"
)

// FileKinds holds the allowed values for the kind column in documents.
var FileKinds = []FileKind{PDF, IMAGE, AUDIO}

// AllowedExtensions holds the accepted upload extensions mapped to their kind.
var AllowedExtensions = map[string]FileKind{
	"pdf":  PDF,
	"png":  IMAGE,
	"jpg":  IMAGE,
	"jpeg": IMAGE,
	"webp": IMAGE,
	"tif":  IMAGE,
	"tiff": IMAGE,
	"bmp":  IMAGE,
	"heic": IMAGE,
	"heif": IMAGE,
	"mp3":  AUDIO,
	"wav":  AUDIO,
	"m4a":  AUDIO,
	"flac": AUDIO,
	"ogg":  AUDIO,
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// KindForExt returns the ingestion kind of an extension, with or without the dot.
func KindForExt(ext string) (FileKind, bool) {
	k, ok := AllowedExtensions[NormalizeExt(ext)]
	return k, ok
}

// IsHEICExt reports whether ext needs an external converter before decoding.
func IsHEICExt(ext string) bool {
	switch NormalizeExt(ext) {
	case "heic", "heif":
		return true
	}
	return false
}
