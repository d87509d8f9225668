package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/synthetic-data-lab/internal/config"
	"github.com/rxtech-lab/synthetic-data-lab/internal/schema"
	"github.com/rxtech-lab/synthetic-data-lab/pkg/errors"
	"go.uber.org/zap"
)

// FieldInfo describes one parameter of a group.
type FieldInfo struct {
	Key       string      `json:"key"`
	Label     string      `json:"label"`
	Kind      schema.Kind `json:"kind"`
	Min       *float64    `json:"min,omitempty"`
	Max       *float64    `json:"max,omitempty"`
	Choices   []string    `json:"choices,omitempty"`
	Default   any         `json:"default"`
	Precision int32       `json:"precision"`
}

// PresetInfo names one preset of a group.
type PresetInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Values      schema.Bundle `json:"values"`
}

// GroupInfo is the catalog entry of one group.
type GroupInfo struct {
	Name    schema.GroupName `json:"name"`
	Fields  []FieldInfo      `json:"fields"`
	Presets []PresetInfo     `json:"presets"`
	State   config.State     `json:"state"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code  errors.ErrorCode `json:"code"`
	Error string           `json:"error"`
}

type selectPresetRequest struct {
	Name string `json:"name"`
}

type editFieldRequest struct {
	Value any `json:"value"`
}

func newFieldInfo(f schema.Field) FieldInfo {
	info := FieldInfo{
		Key:       f.Key,
		Label:     f.Label,
		Kind:      f.Kind,
		Min:       nil,
		Max:       nil,
		Choices:   f.Choices,
		Default:   f.Default,
		Precision: f.Precision,
	}

	if f.Range.IsSome() {
		r := f.Range.Unwrap()
		info.Min = &r.Min
		info.Max = &r.Max
	}

	return info
}

// handleListGroups handles GET /api/v1/groups
func (s *Server) handleListGroups(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make([]GroupInfo, 0, len(s.session.Groups()))
	for _, name := range s.session.Groups() {
		applier, err := s.session.Applier(name)
		if err != nil {
			s.writeError(w, err)
			return
		}

		fields := applier.Group().Fields()
		info := GroupInfo{
			Name:    name,
			Fields:  make([]FieldInfo, 0, len(fields)),
			Presets: nil,
			State:   applier.State(),
		}

		for _, f := range fields {
			info.Fields = append(info.Fields, newFieldInfo(f))
		}

		for _, p := range applier.Catalog().Presets() {
			info.Presets = append(info.Presets, PresetInfo{
				Name:        p.Name,
				Description: p.Description,
				Values:      p.Values,
			})
		}

		groups = append(groups, info)
	}

	writeJSON(w, http.StatusOK, groups)
}

// handleGetState handles GET /api/v1/groups/{group}/state
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	group, err := schema.ParseGroupName(mux.Vars(r)["group"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.session.GetState(group)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// handleSelectPreset handles POST /api/v1/groups/{group}/preset
func (s *Server) handleSelectPreset(w http.ResponseWriter, r *http.Request) {
	var req selectPresetRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	s.mutate(w, r, func(group schema.GroupName) error {
		return s.session.SelectPreset(group, req.Name)
	})
}

// handleEditField handles PUT /api/v1/groups/{group}/fields/{key}
func (s *Server) handleEditField(w http.ResponseWriter, r *http.Request) {
	var req editFieldRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	key := mux.Vars(r)["key"]
	s.mutate(w, r, func(group schema.GroupName) error {
		return s.session.EditField(group, key, req.Value)
	})
}

// handleReset handles POST /api/v1/groups/{group}/reset
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(group schema.GroupName) error {
		return s.session.Reset(group)
	})
}

// mutate runs op against the group named in the path and replies with the
// resulting state.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, op func(schema.GroupName) error) {
	group, err := schema.ParseGroupName(mux.Vars(r)["group"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := op(group); err != nil {
		s.writeError(w, err)
		return
	}

	state, err := s.session.GetState(group)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// maxBodyBytes bounds the size of a request body.
const maxBodyBytes = 64 << 10

// decodeBody reads a JSON request body. Numbers are kept as json.Number so
// that decimal values reach the schema unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.UseNumber()
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, "invalid request body", err)
	}

	return nil
}

// statusCode maps an error code to an HTTP status.
func statusCode(code errors.ErrorCode) int {
	switch {
	case code == errors.ErrCodeUnknownGroup,
		code == errors.ErrCodeUnknownPreset,
		code == errors.ErrCodeUnknownKey:
		return http.StatusNotFound
	case code == errors.ErrCodeApplyInProgress:
		return http.StatusConflict
	case code.IsValidation(), code == errors.ErrCodeInvalidPreset:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusCode(code)

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
	} else {
		s.log.Debug("request rejected", zap.Int("code", int(code)), zap.Error(err))
	}

	writeJSON(w, status, ErrorResponse{Code: code, Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
