// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rotatewriter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
)

const (
	defaultMaxFileSize = 64 * 1024 * 1024
	defaultMaxFiles    = 10
)

// Writer appends to a log file in dir and starts a new file once the current one
// would exceed the size limit. Only the newest maxFiles files are kept.
type Writer struct {
	mu       sync.Mutex
	dir      string
	baseName string
	maxSize  int64
	maxFiles int

	file *os.File
	size int64
	seq  int
}

type Option func(*Writer)

func WithMaxFileSize(size int64) Option {
	return func(w *Writer) { w.maxSize = size }
}

// WithMaxFiles sets how many files are kept, 0 keeps all of them.
func WithMaxFiles(n int) Option {
	return func(w *Writer) { w.maxFiles = n }
}

// New opens the first log file named after baseName in dir, creating dir if needed.
func New(dir, baseName string, opts ...Option) (*Writer, error) {
	w := &Writer{
		dir:      dir,
		baseName: baseName,
		maxSize:  defaultMaxFileSize,
		maxFiles: defaultMaxFiles,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.maxSize <= 0 {
		return nil, errors.New("max file size must be positive")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create log dir [%v]", dir)
	}
	if err := w.rotate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.file == nil {
		return 0, io.ErrClosedPipe
	}
	if w.size > 0 && w.size+int64(len(p)) > w.maxSize {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

// Name returns the path of the file currently written.
func (w *Writer) Name() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return ""
	}
	return w.file.Name()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *Writer) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return errors.Wrap(err, "close log file")
		}
		w.file = nil
	}

	// names sort by creation order: timestamp, then a sequence within the process
	stamp := time.Now().UTC().Format("20060102T150405.000")
	var (
		file *os.File
		err  error
	)
	for {
		w.seq++
		path := filepath.Join(w.dir, fmt.Sprintf("%s-%s-%06d.log", w.baseName, stamp, w.seq))
		file, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
		if !os.IsExist(err) {
			break
		}
	}
	if err != nil {
		return errors.Wrap(err, "open log file")
	}
	w.file = file
	w.size = 0
	return w.prune()
}

func (w *Writer) prune() error {
	if w.maxFiles <= 0 {
		return nil
	}
	files, err := filepath.Glob(filepath.Join(w.dir, w.baseName+"-*.log"))
	if err != nil {
		return err
	}
	if len(files) <= w.maxFiles {
		return nil
	}
	sort.Strings(files)
	for _, f := range files[:len(files)-w.maxFiles] {
		if err := os.Remove(f); err != nil {
			return errors.Wrap(err, "remove old log file")
		}
	}
	return nil
}
