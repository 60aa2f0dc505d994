package docx

import (
	"fmt"
	"strings"
)

// UnsupportedMediaError is returned for image extensions Word cannot embed.
type UnsupportedMediaError struct {
	Extension string
}

func (e *UnsupportedMediaError) Error() string {
	return fmt.Sprintf("unsupported media type %q (accepting png, jpeg, gif, bmp, tiff)", e.Extension)
}

var mediaContentTypes = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// NormalizeMediaExtension maps an extension, with or without the leading
// dot, to the one used for the part name.
func NormalizeMediaExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))

	switch ext {
	case "jpg", "jpeg", "jfif":
		ext = "jpeg"
	case "tif":
		ext = "tiff"
	}

	if _, ok := mediaContentTypes[ext]; !ok {
		return "", &UnsupportedMediaError{Extension: ext}
	}

	return ext, nil
}
