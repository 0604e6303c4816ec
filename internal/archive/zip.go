// Package archive unpacks an uploaded ZIP into its eligible resume files.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/joseph-ayodele/resume-analyzer/constants"
	"github.com/joseph-ayodele/resume-analyzer/internal/common"
)

// File is one resume file pulled out of the archive. Name is the base name;
// any directory structure inside the ZIP is flattened away.
type File struct {
	Name string
	Data []byte
}

type Unpacker struct {
	log *slog.Logger
}

func NewUnpacker(log *slog.Logger) *Unpacker {
	if log == nil {
		log = slog.Default()
	}
	return &Unpacker{log: log}
}

// Extract returns the eligible resume files in archive order. A ZIP that
// cannot be opened maps to ErrCorruptArchive; a readable ZIP with nothing
// eligible inside maps to ErrNoResumeFiles. Entries that fail individually
// are skipped so one bad member does not sink the rest.
func (u *Unpacker) Extract(data []byte) ([]File, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptArchive, err)
	}

	var files []File
	for _, f := range zr.File {
		name := f.Name
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
			u.log.Warn("archive.unsafe_path_skipped", "path", name)
			continue
		}
		if !constants.IsResumeFile(name) {
			u.log.Info("archive.skipped_non_resume", "path", name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			u.log.Error("archive.entry_open_failed", "path", name, "error", err)
			continue
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			u.log.Error("archive.entry_read_failed", "path", name, "error", err)
			continue
		}

		files = append(files, File{Name: path.Base(name), Data: content})
		u.log.Info("archive.extracted", "file", path.Base(name), "bytes", len(content))
	}

	if len(files) == 0 {
		return nil, common.ErrNoResumeFiles
	}
	return files, nil
}
