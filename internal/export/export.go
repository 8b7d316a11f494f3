// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jeranaias/ragchat-tui/internal/model"
	"github.com/jeranaias/ragchat-tui/internal/util"
)

// FilePerm is the permission used for transcript files.
const FilePerm os.FileMode = 0600

// ErrEmpty is returned when there is nothing worth exporting.
var ErrEmpty = errors.New("conversation has no messages")

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// Exporter converts a conversation into a file format.
type Exporter interface {
	// Export converts a conversation to the target format.
	Export(conv *model.Conversation) ([]byte, error)

	// FileExtension returns the file extension including the dot.
	FileExtension() string
}

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// IncludeTimestamps adds per-message times to role headings.
	IncludeTimestamps bool

	// Now is used for the footer and file names. Defaults to time.Now.
	Now func() time.Time
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		IncludeTimestamps: true,
		Now:               time.Now,
	}
}

func (o *Options) now() time.Time {
	if o == nil || o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ToFile exports conv with exporter and writes it atomically with FilePerm.
//
// target may be a file path, an existing directory, or empty. For a directory
// (or empty, meaning dir) a timestamped file name is generated.
func ToFile(conv *model.Conversation, exporter Exporter, target, dir string) (string, error) {
	content, err := exporter.Export(conv)
	if err != nil {
		return "", errors.Wrap(err, "export failed")
	}

	path := target
	if path == "" {
		// The transcript directory may not exist yet.
		path = dir
		if path == "" {
			path = "."
		}
		if err := os.MkdirAll(path, 0700); err != nil {
			return "", errors.Wrap(err, "create transcript directory")
		}
	}
	if isDir(path) || strings.HasSuffix(path, string(os.PathSeparator)) {
		path = filepath.Join(path, FileName(time.Now(), exporter.FileExtension()))
	}

	if err := util.AtomicWriteFile(path, content, FilePerm); err != nil {
		return "", errors.Wrap(err, "write transcript")
	}
	return path, nil
}

// FileName returns the transcript file name for a given time.
func FileName(t time.Time, ext string) string {
	return "transcript_" + t.Format("20060102_150405") + ext
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// validate rejects conversations without any question asked.
func validate(conv *model.Conversation) error {
	if conv == nil {
		return errors.New("conversation is nil")
	}
	for _, m := range conv.Messages() {
		if m.Role == model.RoleUser {
			return nil
		}
	}
	return ErrEmpty
}

// formatShortTimestamp formats a timestamp for inline display.
func formatShortTimestamp(t time.Time) string {
	return t.Format("15:04:05")
}
