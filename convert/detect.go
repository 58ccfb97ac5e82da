package convert

import (
	"errors"
	"io"
	"os"

	"github.com/h2non/filetype"
)

// enough to see first local headers of Office Open XML package
const sniffLen = 8192

// isDocxFile checks file signature. Word always produces proper docx
// signature, other tools may write entries in arbitrary order, so plain zip
// is accepted as well and the entry itself is looked for later.
func isDocxFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer file.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, err
	}
	head = head[:n]

	return filetype.Is(head, "docx") || filetype.Is(head, "zip"), nil
}
