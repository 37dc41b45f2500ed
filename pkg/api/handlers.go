package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/ssargent/caresave/pkg/codec"
	"github.com/ssargent/caresave/pkg/profile"
	"github.com/ssargent/caresave/pkg/storage"
)

// maxBodyBytes bounds every JSON request body
const maxBodyBytes = 64 << 10

// Server holds the API server state
type Server struct {
	profiles ProfileStore
	saves    SaveService
	config   ServerConfig
	metrics  *Metrics
	clock    clockwork.Clock
	logger   *zap.Logger
}

// NewServer creates a new API server
func NewServer(profiles ProfileStore, saves SaveService, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		profiles: profiles,
		saves:    saves,
		config:   config,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
		logger:   zap.NewNop(),
	}
}

// WithClock replaces the clock used to stamp profile updates
func (s *Server) WithClock(clock clockwork.Clock) *Server {
	s.clock = clock
	return s
}

// WithLogger sets the server logger
func (s *Server) WithLogger(logger *zap.Logger) *Server {
	s.logger = logger
	return s
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		sendError(w, fmt.Sprintf("Invalid JSON in request body: %v", err), http.StatusBadRequest)
		return false
	}
	return true
}

// profileStatus maps a profile store or profile rule error to an HTTP status
func profileStatus(err error) int {
	switch {
	case errors.Is(err, storage.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInvalidID), errors.Is(err, profile.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, profile.ErrInsufficientCare),
		errors.Is(err, profile.ErrCompanionNotHatched),
		errors.Is(err, profile.ErrAlreadyHasCompanion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// codecStatus maps a codec error kind to an HTTP status. Text that is not
// Base64 is a bad request; bytes that are not a valid save are unprocessable.
func codecStatus(kind codec.Kind) int {
	switch kind {
	case codec.KindMalformedTransport:
		return http.StatusBadRequest
	case codec.KindMalformedRecord, codec.KindInvalidMagic, codec.KindChecksumMismatch, codec.KindVersionMismatch:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		sendError(w, "Email is required", http.StatusBadRequest)
		return
	}

	doc, err := s.profiles.Create(profile.NewDocument(req.Email, "", s.clock.Now()))
	s.metrics.RecordProfileOperation("create", err == nil)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to create profile: %v", err), profileStatus(err))
		return
	}

	s.logger.Info("created profile", zap.String("account_id", doc.UID))
	sendStatus(w, doc, http.StatusCreated)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	doc, err := s.profiles.Get(chi.URLParam(r, "accountId"))
	s.metrics.RecordProfileOperation("get", err == nil)
	if err != nil {
		sendError(w, err.Error(), profileStatus(err))
		return
	}
	sendSuccess(w, doc)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")

	var doc profile.Document
	if !decodeBody(w, r, &doc) {
		return
	}
	if doc.UID == "" {
		doc.UID = accountID
	}
	if doc.UID != accountID {
		sendError(w, "uid does not match the account id in the path", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(doc.Email) == "" {
		sendError(w, "Email is required", http.StatusBadRequest)
		return
	}

	// profiles are only created through POST so ids stay ksuids
	if _, err := s.profiles.Get(accountID); err != nil {
		s.metrics.RecordProfileOperation("put", false)
		sendError(w, err.Error(), profileStatus(err))
		return
	}

	err := s.profiles.Put(&doc)
	s.metrics.RecordProfileOperation("put", err == nil)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to store profile: %v", err), profileStatus(err))
		return
	}
	sendSuccess(w, &doc)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountId")
	err := s.profiles.Delete(accountID)
	s.metrics.RecordProfileOperation("delete", err == nil)
	if err != nil {
		sendError(w, err.Error(), profileStatus(err))
		return
	}
	sendSuccess(w, map[string]string{"account_id": accountID, "status": "deleted"})
}

func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	ids, err := s.profiles.List()
	s.metrics.RecordProfileOperation("list", err == nil)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to list profiles: %v", err), http.StatusInternalServerError)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	sendSuccess(w, map[string]interface{}{"account_ids": ids, "count": len(ids)})
}

// update loads a profile, applies fn and stores the result
func (s *Server) update(w http.ResponseWriter, accountID string, fn func(*profile.Document, time.Time) error) {
	doc, err := s.profiles.Get(accountID)
	if err != nil {
		s.metrics.RecordProfileOperation("update", false)
		sendError(w, err.Error(), profileStatus(err))
		return
	}
	if err := fn(doc, s.clock.Now()); err != nil {
		sendError(w, err.Error(), profileStatus(err))
		return
	}
	err = s.profiles.Put(doc)
	s.metrics.RecordProfileOperation("update", err == nil)
	if err != nil {
		sendError(w, fmt.Sprintf("Failed to store profile: %v", err), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, doc)
}

func (s *Server) handleApplyAction(w http.ResponseWriter, r *http.Request) {
	var req ActionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	action, err := profile.LookupAction(req.Action)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.update(w, chi.URLParam(r, "accountId"), func(doc *profile.Document, now time.Time) error {
		return doc.Apply(action, now)
	})
}

func (s *Server) handleCompleteSession(w http.ResponseWriter, r *http.Request) {
	s.update(w, chi.URLParam(r, "accountId"), func(doc *profile.Document, now time.Time) error {
		doc.CompleteSession(now)
		return nil
	})
}

func (s *Server) handleListActions(w http.ResponseWriter, r *http.Request) {
	names := profile.ActionNames()
	out := make([]profile.Action, 0, len(names))
	for _, name := range names {
		a, _ := profile.LookupAction(name)
		out = append(out, a)
	}
	sendSuccess(w, out)
}

func (s *Server) handleGenerateSave(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	summary, err := s.saves.Generate(chi.URLParam(r, "accountId"))
	if err != nil {
		var cerr *codec.Error
		if errors.As(err, &cerr) {
			s.metrics.RecordCodecOperation("encode", err, time.Since(start))
			sendCodecError(w, err, cerr.Kind.String(), http.StatusInternalServerError)
			return
		}
		sendError(w, err.Error(), profileStatus(err))
		return
	}
	s.metrics.RecordCodecOperation("encode", nil, time.Since(start))
	sendSuccess(w, summary)
}

func (s *Server) handleDecodeSave(w http.ResponseWriter, r *http.Request) {
	var req DecodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	record, err := s.saves.Load(req.Base64)
	s.metrics.RecordCodecOperation("decode", err, time.Since(start))
	if err != nil {
		kind := codec.KindOf(err)
		sendCodecError(w, err, kind.String(), codecStatus(kind))
		return
	}

	view := NewDecodedSave(record)
	if req.AccountID != "" {
		match, err := s.saves.Verify(record, req.AccountID)
		if err != nil {
			sendError(w, err.Error(), profileStatus(err))
			return
		}
		view.IdentityMatch = &match
	}
	sendSuccess(w, view)
}
