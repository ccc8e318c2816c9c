package global

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/samber/lo"
)

// RollingFileWriter appends to name.log in a directory. Once name.log is bigger than MaxSize it
// is renamed to name-1.log, older logs move up one index, and logs past MaxLogs are removed.
type RollingFileWriter struct {
	FileDirectory string
	FileName      string
	MaxSize       int64
	// Including the main log file
	MaxLogs int

	mu *sync.Mutex
}

func NewRollingFileWriter(fileDir string, fileName string, maxSize int64, maxLogs int) (RollingFileWriter, error) {
	absFileDir, err := filepath.Abs(fileDir)
	if err != nil {
		return RollingFileWriter{}, err
	}

	if err := os.MkdirAll(absFileDir, 0750); err != nil {
		return RollingFileWriter{}, fmt.Errorf("creating log dir: %w", err)
	}

	return RollingFileWriter{
		FileDirectory: absFileDir,
		FileName:      fileName,
		MaxSize:       maxSize,
		MaxLogs:       max(1, maxLogs),
		mu:            &sync.Mutex{},
	}, nil
}

func (w RollingFileWriter) getFullFilePath() string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s.log", w.FileName))
}

func (w RollingFileWriter) indexedLog(index int) string {
	return filepath.Join(w.FileDirectory, fmt.Sprintf("%s-%d.log", w.FileName, index))
}

// archivedLogs returns the numbered logs sorted by index, newest first
func (w RollingFileWriter) archivedLogs() ([]string, error) {
	logMatches, err := fs.Glob(os.DirFS(w.FileDirectory), w.FileName+"-*.log")
	if err != nil {
		return nil, err
	}

	paths := lo.Map(logMatches, func(log string, _ int) string {
		return filepath.Join(w.FileDirectory, log)
	})

	slices.SortFunc(paths, func(a, b string) int {
		return getLogIndex(w.FileName, a) - getLogIndex(w.FileName, b)
	})

	return paths, nil
}

func (w RollingFileWriter) Write(b []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats, err := os.Stat(w.getFullFilePath())
	if err == nil && stats.Size()+int64(len(b)) > w.MaxSize && stats.Size() > 0 {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	mainLogFile, err := os.OpenFile(w.getFullFilePath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer mainLogFile.Close()

	return mainLogFile.Write(b)
}

func (w RollingFileWriter) rotate() error {
	logs, err := w.archivedLogs()
	if err != nil {
		return err
	}

	// walk backwards so name-1 never overwrites name-2 before it moved
	for _, log := range slices.Backward(logs) {
		index := getLogIndex(w.FileName, log)

		// name.log becomes name-1.log so only MaxLogs-1 archives survive
		if index < 1 || index+1 > w.MaxLogs-1 {
			if err := os.Remove(log); err != nil {
				return err
			}
			continue
		}

		if err := os.Rename(log, w.indexedLog(index+1)); err != nil {
			return err
		}
	}

	if w.MaxLogs == 1 {
		return os.Remove(w.getFullFilePath())
	}

	return os.Rename(w.getFullFilePath(), w.indexedLog(1))
}

// getLogIndex gets the number out of name-N.log, or -1 if it isn't there
func getLogIndex(fileName string, log string) int {
	trimmed, ok := strings.CutPrefix(filepath.Base(log), fileName+"-")
	if !ok {
		return -1
	}

	index, err := strconv.Atoi(strings.TrimSuffix(trimmed, ".log"))
	if err != nil {
		return -1
	}

	return index
}
