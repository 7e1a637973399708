package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/ziadkadry99/treeutil/internal/diskinfo"
	"github.com/ziadkadry99/treeutil/internal/usage"
	"github.com/ziadkadry99/treeutil/internal/walker"
)

// listResponse is the body of GET /api/list.
type listResponse struct {
	Path      string          `json:"path"`
	Entries   []walker.Record `json:"entries"`
	Truncated bool            `json:"truncated"`
}

// errorResponse is the body of every non-2xx API response.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// queryBool reads a boolean query parameter; absent or malformed values are false.
func queryBool(r *http.Request, name string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(name))
	return b
}

func (s *Server) resolvePath(raw string) (string, error) {
	if raw == "" {
		raw = "."
	}
	return walker.NormalizePath(raw, s.cfg.BaseDir)
}

// listOptions builds enumeration options from query parameters.
func listOptions(r *http.Request) (walker.Options, error) {
	opts := walker.Options{
		Recurse:          queryBool(r, "recurse"),
		IncludeHidden:    queryBool(r, "include_hidden"),
		TraverseSymlinks: queryBool(r, "traverse_symlinks"),
	}
	if t := r.URL.Query().Get("type"); t != "" {
		et, err := walker.ParseEntryType(t)
		if err != nil {
			return opts, err
		}
		opts.Type = et
	}
	return opts, nil
}

func statusFor(err error) int {
	if errors.Is(err, walker.ErrInvalidConfiguration) || errors.Is(err, walker.ErrPathSyntax) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	path, err := s.resolvePath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	opts, err := listOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, errors.New("limit must be a non-negative integer"))
			return
		}
	}

	seq, err := s.walker.Enumerate(path, opts)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}

	resp := listResponse{Path: path, Entries: []walker.Record{}}
	for e := range seq {
		if err := r.Context().Err(); err != nil {
			return
		}
		if limit > 0 && len(resp.Entries) == limit {
			resp.Truncated = true
			break
		}
		resp.Entries = append(resp.Entries, e.Record())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUsage(w http.ResponseWriter, r *http.Request) {
	root, err := s.resolvePath(r.URL.Query().Get("path"))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	opts := usage.Options{
		ExcludeHidden:    queryBool(r, "exclude_hidden"),
		TraverseSymlinks: queryBool(r, "traverse_symlinks"),
	}

	rows := []usage.Info{}
	err = s.usage.Calculate(r.Context(), root, opts, func(info usage.Info) error {
		rows = append(rows, info)
		return nil
	})
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleDiskInfo(w http.ResponseWriter, r *http.Request) {
	var paths []string
	for _, raw := range r.URL.Query()["path"] {
		p, err := s.resolvePath(raw)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		paths = append(paths, p)
	}

	infos, err := diskinfo.Collect(paths, queryBool(r, "all"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, diskinfo.ErrUnsupported) {
			status = http.StatusNotImplemented
		}
		writeError(w, status, err)
		return
	}
	if infos == nil {
		infos = []diskinfo.Info{}
	}
	writeJSON(w, http.StatusOK, infos)
}
