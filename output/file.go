package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/nojima/hsend/response"
	"github.com/pkg/errors"
)

var reIndexSuffix = regexp.MustCompile(`\.(\d+)$`)

// FileWriter saves the raw response body to a file.
type FileWriter struct {
	fullPath string
}

func NewFileWriter(options *Options) *FileWriter {
	fullPath := options.OutputFile
	if !options.Overwrite {
		fullPath = makeNonOverlappingFilename(fullPath)
	}
	return &FileWriter{
		fullPath: fullPath,
	}
}

func makeNonOverlappingFilename(path string) string {
	_, err := os.Stat(path)
	if err == nil {
		newPath := reIndexSuffix.ReplaceAllStringFunc(path, func(index string) string {
			i, err := strconv.Atoi(strings.TrimPrefix(index, "."))
			if err != nil {
				panic(err)
			}
			i++
			return fmt.Sprintf(".%d", i)
		})
		if path == newPath {
			path = fmt.Sprintf("%s.%d", path, 1)
		} else {
			path = newPath
		}
		path = makeNonOverlappingFilename(path)
	}
	return path
}

func (f *FileWriter) Write(resp *response.Response) error {
	file, err := os.Create(f.fullPath)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer file.Close()

	if _, err := io.WriteString(file, resp.BodyText); err != nil {
		return errors.Wrapf(err, "writing %s", f.fullPath)
	}
	if err := file.Close(); err != nil {
		return errors.Wrapf(err, "closing %s", f.fullPath)
	}
	return nil
}

func (f *FileWriter) Path() string {
	return f.fullPath
}

func (f *FileWriter) Filename() string {
	return filepath.Base(f.fullPath)
}
