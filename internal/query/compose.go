// Package query assembles the text sent to the completion service.
package query

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// ErrFileRead matches every *FileReadError.
var ErrFileRead = errors.New("failed to read included file")

// FileReadError reports an included file that could not be read. Composition
// stops at the first one.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrFileRead) succeed.
func (e *FileReadError) Is(target error) bool {
	return target == ErrFileRead
}

// Compose builds the request body: the prompt, the file tree, then one fenced
// block per included path read from fsys. Paths are slash-separated and
// relative to fsys.
func Compose(fsys fs.FS, prompt, tree string, paths []string) (string, error) {
	var b strings.Builder
	b.WriteString(prompt)
	b.WriteString("\n\n")

	b.WriteString("### File Tree:\n")
	b.WriteString(tree)
	b.WriteString("\n\n")

	b.WriteString("### File Contents:\n")
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", &FileReadError{Path: path, Err: err}
		}
		fmt.Fprintf(&b, "```\n// %s\n%s\n```\n", path, data)
	}
	return b.String(), nil
}
