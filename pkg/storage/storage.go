// Package storage keeps uploaded receipt scans and letterhead logos on
// disk, under one directory per owning record.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MaxFileSize = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// SaveImage writes one uploaded image under <baseDir>/<ownerID>/ and returns
// the public path. Only JPG and PNG up to 5MB are accepted.
func SaveImage(baseDir, ownerID string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxFileSize {
		return "", fmt.Errorf("file %s exceeds the 5MB limit", fileHeader.Filename)
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("file %s is not a JPG or PNG image", fileHeader.Filename)
	}

	uploadDir := filepath.Join(baseDir, ownerID)
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	dest := filepath.Join(uploadDir, uuid.NewString()+ext)
	dst, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return "/" + filepath.ToSlash(dest), nil
}

// Remove deletes a previously saved image by its public path. Missing files
// are not an error; the record is the source of truth, not the disk.
func Remove(publicPath string) error {
	if publicPath == "" {
		return nil
	}
	err := os.Remove(strings.TrimPrefix(publicPath, "/"))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
