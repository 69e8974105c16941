// Package server is a reference implementation of the line sampling
// service over local files. It exists for development and integration
// testing of the viewer; production deployments point the client at a
// real indexing backend speaking the same API.
package server

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/user/rless/internal/remote"
)

// Server serves line samples from files under a root directory.
type Server struct {
	root string

	mu    sync.Mutex
	files map[string]*indexedFile
}

type indexedFile struct {
	idx               *lineIndex
	isCompressed      bool
	compressionFormat string
	sizeBytes         int64
	cachePath         string // temp decompressed copy, "" if none
}

// New creates a server rooted at dir.
func New(root string) *Server {
	return &Server{
		root:  root,
		files: make(map[string]*indexedFile),
	}
}

// Handler returns the HTTP handler for the sampling API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/sample", s.handleSample)
	mux.HandleFunc("GET /api/v1/index", s.handleIndex)
	return mux
}

// Close releases mapped files and removes decompression caches.
func (s *Server) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for _, f := range s.files {
		if err := f.idx.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		if f.cachePath != "" {
			os.Remove(f.cachePath)
		}
	}
	s.files = make(map[string]*indexedFile)
	return firstErr
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path := q.Get("path")
	keys := q["k"]
	if path == "" || len(keys) == 0 {
		writeError(w, http.StatusBadRequest, remote.KindInternal, "path and k parameters are required")
		return
	}
	contextLines, _ := strconv.Atoi(q.Get("context"))

	f, err := s.open(path)
	if err != nil {
		writeOpenError(w, err)
		return
	}

	count := f.idx.Count()
	result := remote.SampleResult{
		Samples:           map[string][]string{},
		IsCompressed:      f.isCompressed,
		CompressionFormat: f.compressionFormat,
	}

	for _, key := range keys {
		if start, end, ok := parseRange(key); ok {
			if start > count || count == 0 {
				writeError(w, http.StatusRequestedRangeNotSatisfiable, remote.KindEOF,
					fmt.Sprintf("range %s is past the end of %s (%d lines)", key, path, count))
				return
			}
			result.Samples[key] = f.idx.Lines(start, end)
			continue
		}

		pivot, err := strconv.Atoi(key)
		if err != nil {
			writeError(w, http.StatusBadRequest, remote.KindInternal, "malformed sample key "+key)
			return
		}
		if pivot == -1 {
			pivot = count
		}
		if pivot < 1 || pivot > count {
			writeError(w, http.StatusRequestedRangeNotSatisfiable, remote.KindEOF,
				fmt.Sprintf("line %d is out of bounds for %s (%d lines)", pivot, path, count))
			return
		}

		start := pivot - contextLines
		if start < 1 {
			start = 1
		}
		end := pivot + contextLines
		if end > count {
			end = count
		}
		// The key is echoed back resolved, so "-1" tells the caller
		// the real last line number.
		result.Samples[strconv.Itoa(pivot)] = f.idx.Lines(start, end)
		result.BeforeContext = pivot - start
		result.AfterContext = end - pivot
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeError(w, http.StatusBadRequest, remote.KindInternal, "path parameter is required")
		return
	}

	f, err := s.open(path)
	if err != nil {
		writeOpenError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, remote.IndexResult{
		LineCount: f.idx.Count(),
		SizeBytes: f.sizeBytes,
	})
}

// open maps and indexes a file on first use, caching the result.
func (s *Server) open(path string) (*indexedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.files[path]; ok {
		return f, nil
	}

	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}

	f, err := indexFile(full)
	if err != nil {
		return nil, err
	}
	s.files[path] = f
	return f, nil
}

// resolve maps a request path onto the served root, rejecting escapes.
func (s *Server) resolve(path string) (string, error) {
	clean := filepath.Clean("/" + path)
	full := filepath.Join(s.root, clean)
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) &&
		full != filepath.Clean(s.root) {
		return "", fmt.Errorf("path %s escapes the served root", path)
	}
	return full, nil
}

func indexFile(full string) (*indexedFile, error) {
	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}

	readPath := full
	cachePath := ""
	isCompressed := false
	format := ""

	if strings.HasSuffix(full, ".gz") {
		// Decompress into a temp cache file so the mapped index works
		// on plain text.
		cachePath, err = decompressToCache(full)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", full, err)
		}
		readPath = cachePath
		isCompressed = true
		format = "gzip"
	}

	file, err := openMapped(readPath)
	if err != nil {
		if cachePath != "" {
			os.Remove(cachePath)
		}
		return nil, err
	}

	if looksBinary(file) {
		file.Close()
		if cachePath != "" {
			os.Remove(cachePath)
		}
		return nil, remote.ErrBinaryFile
	}

	idx, err := buildLineIndex(file)
	if err != nil {
		file.Close()
		if cachePath != "" {
			os.Remove(cachePath)
		}
		return nil, err
	}

	return &indexedFile{
		idx:               idx,
		isCompressed:      isCompressed,
		compressionFormat: format,
		sizeBytes:         info.Size(),
		cachePath:         cachePath,
	}, nil
}

// decompressToCache writes the decompressed content to a temp file and
// returns its path.
func decompressToCache(full string) (string, error) {
	in, err := os.Open(full)
	if err != nil {
		return "", err
	}
	defer in.Close()

	gz, err := gzip.NewReader(in)
	if err != nil {
		return "", err
	}
	defer gz.Close()

	baseName := strings.TrimSuffix(filepath.Base(full), ".gz")
	out, err := os.CreateTemp("", "rless-cache-*-"+baseName)
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(out, gz); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

// looksBinary sniffs the first 8KB for NUL bytes.
func looksBinary(file *mappedFile) bool {
	size := file.Size()
	if size == 0 {
		return false
	}
	n := int64(8 * 1024)
	if n > size {
		n = size
	}
	head, err := file.ReadRange(0, n)
	if err != nil {
		return false
	}
	return bytes.IndexByte(head, 0) != -1
}

// parseRange parses a "start-end" key. Plain numbers (including "-1")
// are not ranges.
func parseRange(key string) (start, end int, ok bool) {
	if _, err := strconv.Atoi(key); err == nil {
		return 0, 0, false
	}
	first, rest, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	start, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, false
	}
	end, err = strconv.Atoi(rest)
	if err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"kind":  kind,
	})
}

func writeOpenError(w http.ResponseWriter, err error) {
	if errors.Is(err, remote.ErrBinaryFile) {
		writeError(w, http.StatusUnprocessableEntity, remote.KindBinary, "file contains binary data")
		return
	}
	if os.IsNotExist(err) {
		writeError(w, http.StatusNotFound, remote.KindInternal, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, remote.KindInternal, err.Error())
}
