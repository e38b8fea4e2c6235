package base64

import (
	"encoding/base64"
	"errors"
	"mime"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrMalformedDataURI = errors.New("malformed base64 data uri")

// GetContentType returns the media type of a "data:<type>;base64,<payload>" string.
func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if !strings.HasPrefix(file, dataPrefix) || end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

// Decode returns the payload and media type of a data uri.
func Decode(file string) (data []byte, contentType string, err error) {
	contentType = GetContentType(file)
	if contentType == "" {
		return nil, "", ErrMalformedDataURI
	}

	payload := file[strings.Index(file, base64Marker)+len(base64Marker):]

	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", errors.Join(ErrMalformedDataURI, err)
	}

	return data, contentType, nil
}

// Extension picks a file extension for the media type, falling back to ".bin".
func Extension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}

	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}

	return ".bin"
}
