package helper

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"
)

// WriteCorpusFile writes data to a corpus file in directory path.
// The filename is calculated from the SHA1 sum of the file contents.
func WriteCorpusFile(path string, data []byte) error {
	// create the directory, if it doesn't exist yet
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return err
		}
	}
	hash := sha1.Sum(data)
	return os.WriteFile(filepath.Join(path, hex.EncodeToString(hash[:])), data, 0o644)
}
