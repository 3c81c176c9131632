package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/namesmith/internal/generation"
	"github.com/jonathan/namesmith/internal/logging"
	"github.com/jonathan/namesmith/internal/types"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a JSON body into v. Unknown fields are ignored.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return &ErrBadRequest{Message: "Request body is required", Cause: err}
		}
		return &ErrBadRequest{Message: "Invalid JSON body", Cause: err}
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": "Business Name Generator API is running!",
	})
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	features := s.generator.Features()
	features.FavoritesStorage = s.favorites != nil
	s.jsonResponse(w, http.StatusOK, features)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.generateTimeout)
	defer cancel()

	resp, err := s.generator.Run(ctx, req, nil)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.metrics.observeGeneration(resp.GenerationMethod, resp.IndustryDetected, len(resp.Names))
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGenerateStream runs a generation and reports each step as an SSE
// progress event, ending with a result or error event.
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	var req types.GenerateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	onProgress := func(ev generation.ProgressEvent) {
		if err := sse.writeEvent(eventProgress, ev); err != nil {
			s.log.Debug("progress event dropped", logging.Err(err))
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.generateTimeout)
	defer cancel()

	resp, err := s.generator.Run(ctx, req, onProgress)
	if err != nil {
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			s.log.Error("stream generation failed", slog.String("path", r.URL.Path), logging.Err(err))
		}
		sse.writeError(status, clientMessage(err)) //nolint:errcheck
		return
	}
	s.metrics.observeGeneration(resp.GenerationMethod, resp.IndustryDetected, len(resp.Names))
	sse.writeEvent(eventResult, resp) //nolint:errcheck
}

func (s *Server) handleCheckDomain(w http.ResponseWriter, r *http.Request) {
	var req types.DomainCheckRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	if req.BusinessName == "" {
		s.writeError(w, r, &ErrBadRequest{Message: "Business name is required"})
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.domains.Check(req.BusinessName))
}

func (s *Server) handleSaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req types.SaveFavoriteRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := types.SaveFavoriteResponse{Success: true, Message: "Favorite saved!"}
	if s.favorites != nil {
		fav, err := s.favorites.SaveFavorite(r.Context(), req.ClientID, req.Name, req.Tagline)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		resp.Favorite = fav
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "favorites storage"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, r, &ErrBadRequest{Message: "limit must be a non-negative integer", Cause: err})
			return
		}
		limit = n
	}

	favorites, err := s.favorites.ListFavorites(r.Context(), r.URL.Query().Get("client_id"), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.FavoritesResponse{Favorites: favorites, Count: len(favorites)})
}

// favoriteID parses the {id} path value.
func favoriteID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrBadRequest{Message: "Invalid favorite ID", Cause: err}
	}
	return id, nil
}

func (s *Server) handleGetFavorite(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "favorites storage"})
		return
	}
	id, err := favoriteID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	fav, err := s.favorites.GetFavorite(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if fav == nil {
		s.writeError(w, r, &ErrNotFound{Resource: "favorite", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, fav)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if s.favorites == nil {
		s.writeError(w, r, &ErrUnavailable{Feature: "favorites storage"})
		return
	}
	id, err := favoriteID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	deleted, err := s.favorites.DeleteFavorite(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !deleted {
		s.writeError(w, r, &ErrNotFound{Resource: "favorite", ID: id.String()})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"success": true, "message": "Favorite deleted"})
}
