package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/idelchi/gosplit/internal/archive"
	"github.com/idelchi/gosplit/internal/fileutil"
	"github.com/idelchi/gosplit/internal/logger"
	"github.com/idelchi/gosplit/internal/shard"
)

// Bytes of multipart framing and form fields tolerated on top of the payload ceiling.
const formOverhead = 1 << 20

// Form data kept in memory before the multipart reader spills to disk.
const formMemory = 32 << 20

func (s *Server) split(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxSize+formOverhead)

	if err := r.ParseMultipartForm(formMemory); err != nil {
		writeError(w, r, formError(err))

		return
	}

	defer s.removeForm(r)

	pieces, err := strconv.Atoi(strings.TrimSpace(r.FormValue("pieces")))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: pieces: %w", errBadRequest, err))

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: file: %w", errBadRequest, err))

		return
	}
	defer file.Close()

	data, err := s.readLimited(file)
	if err != nil {
		writeError(w, r, fmt.Errorf("reading %q: %w", header.Filename, err))

		return
	}

	result, err := shard.Split(header.Filename, data, pieces, s.cfg.Options)
	if err != nil {
		writeError(w, r, err)

		return
	}

	parts, err := result.Parts()
	if err != nil {
		writeError(w, r, err)

		return
	}

	bundle, err := archive.Bytes(parts, time.Now())
	if err != nil {
		writeError(w, r, err)

		return
	}

	logger.FromRequest(r).Info().
		Str("filename", header.Filename).
		Int("pieces", pieces).
		Int("size", len(data)).
		Msg("split")

	name := filepath.Base(header.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "split"
	}

	serveAttachment(w, "application/zip", name+".zip", bundle)
}

func (s *Server) join(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxSize+formOverhead)

	if err := r.ParseMultipartForm(formMemory); err != nil {
		writeError(w, r, formError(err))

		return
	}

	defer s.removeForm(r)

	uploads := r.MultipartForm.File["files"]
	if len(uploads) == 0 {
		writeError(w, r, fmt.Errorf("%w: no files uploaded", errBadRequest))

		return
	}

	staging, err := fileutil.NewScopedDir(s.cfg.TempDir, "gosplit-join-*")
	if err != nil {
		writeError(w, r, err)

		return
	}

	defer func() {
		if err := staging.Close(); err != nil {
			log.Error().Err(err).Msg("cleaning up staged parts")
		}
	}()

	if err := s.stage(staging.Path, uploads); err != nil {
		writeError(w, r, err)

		return
	}

	joined, err := shard.JoinParts(shard.Dir(staging.Path), s.cfg.Options)
	if err != nil {
		writeError(w, r, err)

		return
	}

	log.Info().
		Str("filename", joined.Filename).
		Int("parts", len(uploads)).
		Int("size", len(joined.Data)).
		Msg("join")

	serveAttachment(w, "application/octet-stream", filepath.Base(joined.Filename), joined.Data)
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.cfg.Version})
}

// stage copies every upload into dir under its base name.
func (s *Server) stage(dir string, uploads []*multipart.FileHeader) error {
	seen := make(map[string]struct{}, len(uploads))

	for _, upload := range uploads {
		name := filepath.Base(upload.Filename)
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return fmt.Errorf("%w: invalid part name %q", errBadRequest, upload.Filename)
		}

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: part %q uploaded more than once", errBadRequest, name)
		}

		seen[name] = struct{}{}

		if err := s.stageOne(filepath.Join(dir, name), upload); err != nil {
			return err
		}
	}

	return nil
}

func (s *Server) stageOne(path string, upload *multipart.FileHeader) error {
	if upload.Size > s.cfg.MaxSize {
		return fmt.Errorf("%w: part %q has %d bytes", errTooLarge, upload.Filename, upload.Size)
	}

	file, err := upload.Open()
	if err != nil {
		return fmt.Errorf("opening upload %q: %w", upload.Filename, err)
	}
	defer file.Close()

	data, err := s.readLimited(file)
	if err != nil {
		return fmt.Errorf("reading upload %q: %w", upload.Filename, err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("staging %q: %w", upload.Filename, err)
	}

	return nil
}

// readLimited reads r fully, failing with errTooLarge past the configured ceiling.
func (s *Server) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.cfg.MaxSize+1))
	if err != nil {
		return nil, err
	}

	if int64(len(data)) > s.cfg.MaxSize {
		return nil, errTooLarge
	}

	return data, nil
}

func (s *Server) removeForm(r *http.Request) {
	if r.MultipartForm == nil {
		return
	}

	if err := r.MultipartForm.RemoveAll(); err != nil {
		logger.FromRequest(r).Error().Err(err).Msg("removing multipart files")
	}
}

func formError(err error) error {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return fmt.Errorf("%w: %w", errTooLarge, err)
	}

	return fmt.Errorf("%w: parsing form: %w", errBadRequest, err)
}

func serveAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)

	io.Copy(w, bytes.NewReader(body)) //nolint:errcheck // client gone
}
