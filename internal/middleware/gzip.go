package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// gzipReader распаковывает тело входящего запроса.
type gzipReader struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func newGzipReader(body io.ReadCloser) (*gzipReader, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}
	return &gzipReader{body: body, zr: zr}, nil
}

func (r *gzipReader) Read(p []byte) (int, error) {
	return r.zr.Read(p)
}

func (r *gzipReader) Close() error {
	if err := r.zr.Close(); err != nil {
		return err
	}
	return r.body.Close()
}

// compressible сообщает, имеет ли смысл сжимать ответ этого типа.
func compressible(contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	return ct == "application/json" || ct == "text/html" || ct == "text/plain"
}

// gzipWriter сжимает ответ, если его Content-Type того стоит.
// Решение принимается при записи заголовков.
type gzipWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
	compressing bool
}

func newGzipWriter(w http.ResponseWriter) *gzipWriter {
	return &gzipWriter{
		ResponseWriter: w,
		zw:             gzip.NewWriter(w),
	}
}

func (w *gzipWriter) WriteHeader(statusCode int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true

	if compressible(w.Header().Get("Content-Type")) && statusCode < 300 {
		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Del("Content-Length")
		w.compressing = true
	}

	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}

	if w.compressing {
		return w.zw.Write(data)
	}
	return w.ResponseWriter.Write(data)
}

func (w *gzipWriter) Close() error {
	if w.compressing {
		return w.zw.Close()
	}
	return nil
}

// Gzip распаковывает сжатые тела запросов и сжимает ответы для
// клиентов с Accept-Encoding: gzip.
func Gzip(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.Contains(r.Header.Get("Content-Encoding"), "gzip") {
				body, err := newGzipReader(r.Body)
				if err != nil {
					logger.Warn("failed to decompress request body",
						zap.Error(err),
						zap.String("uri", r.RequestURI),
					)
					http.Error(w, "failed to decompress request body", http.StatusBadRequest)
					return
				}
				defer body.Close()
				r.Body = body
			}

			if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
				next.ServeHTTP(w, r)
				return
			}

			zw := newGzipWriter(w)
			defer func() {
				if err := zw.Close(); err != nil {
					logger.Error("failed to close gzip writer",
						zap.Error(err),
						zap.String("uri", r.RequestURI),
					)
				}
			}()

			next.ServeHTTP(zw, r)
		})
	}
}
