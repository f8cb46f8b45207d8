package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// StaticHandler serves the frontend directory. The file server resolves
// "/" to index.html and 404s anything the directory does not contain.
type StaticHandler struct {
	fs     http.Handler
	logger *zap.Logger
}

func NewStaticHandler(dir string, logger *zap.Logger) *StaticHandler {
	return &StaticHandler{
		fs:     http.FileServer(http.Dir(dir)),
		logger: logger,
	}
}

func (h *StaticHandler) Serve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	h.fs.ServeHTTP(w, r)
}
