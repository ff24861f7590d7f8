package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/matzehuels/qrtile/pkg/buildinfo"
	"github.com/matzehuels/qrtile/pkg/encoder"
	"github.com/matzehuels/qrtile/pkg/errors"
	"github.com/matzehuels/qrtile/pkg/pipeline"
	"github.com/matzehuels/qrtile/pkg/render"
	"github.com/matzehuels/qrtile/pkg/render/sink"
)

// RenderIDHeader carries the runner's result ID.
const RenderIDHeader = "X-Render-ID"

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRequest(r.URL.Query())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := req.Formats[0]
	w.Header().Set("Content-Type", sink.ContentType(format))
	w.Header().Set(RenderIDHeader, result.ID)
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	if result.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// parseRequest maps query parameters onto a runner request, falling back to
// the server defaults for anything absent.
func (s *Server) parseRequest(q url.Values) (pipeline.Request, error) {
	req := pipeline.Request{
		Text:   q.Get("text"),
		Config: s.defaults,
		Title:  q.Get("title"),
	}

	var err error
	if v := q.Get("width"); v != "" {
		if req.Config.Width, err = s.parseExtent("width", v); err != nil {
			return req, err
		}
	}
	if v := q.Get("height"); v != "" {
		if req.Config.Height, err = s.parseExtent("height", v); err != nil {
			return req, err
		}
	}
	if v := q.Get("backend"); v != "" {
		if req.Config.Backend, err = render.ParseBackend(v); err != nil {
			return req, err
		}
	}
	if v := q.Get("fg"); v != "" {
		if req.Config.Foreground, err = render.ParseColor(v); err != nil {
			return req, err
		}
	}
	if v := q.Get("bg"); v != "" {
		if req.Config.Background, err = render.ParseColor(v); err != nil {
			return req, err
		}
	}
	if v := q.Get("level"); v != "" {
		if req.Level, err = encoder.ParseLevel(v); err != nil {
			return req, err
		}
	}
	if v := q.Get("version"); v != "" {
		if req.Version, err = strconv.Atoi(v); err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "version must be an integer, got %q", v)
		}
	}
	if v := q.Get("border"); v != "" {
		if req.Border, err = strconv.ParseBool(v); err != nil {
			return req, errors.New(errors.ErrCodeInvalidInput, "border must be a boolean, got %q", v)
		}
	}
	if v := q.Get("format"); v != "" {
		req.Formats = []string{strings.TrimSpace(v)}
	}
	return req, req.ValidateAndSetDefaults()
}

func (s *Server) parseExtent(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidGeometry, "%s must be a number, got %q", name, v)
	}
	if f > s.maxExtent {
		return 0, errors.New(errors.ErrCodeInvalidGeometry, "%s must not exceed %g, got %g", name, s.maxExtent, f)
	}
	return f, nil
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	if errors.IsClientError(err) {
		status = http.StatusBadRequest
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("render failed", "error", err, "path", r.URL.Path)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
