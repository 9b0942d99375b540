package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeNameChars = regexp.MustCompile(`[^\w.\-]`)

// SanitizeFilename strips path components and any character that is not
// alphanumeric, dash, underscore or dot.
func SanitizeFilename(name string) string {
	clean := unsafeNameChars.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" {
		return "file"
	}
	return clean
}

func SaveFile(file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	filename := fmt.Sprintf("%s%s", GenerateRandomString(12), filepath.Ext(SanitizeFilename(header.Filename)))
	filePath := filepath.Join(folder, filename)

	if err := EnsureDir(folder); err != nil {
		return "", err
	}

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err = io.Copy(out, file); err != nil {
		return "", err
	}

	return filename, nil
}
