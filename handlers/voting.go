// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Robinson7070/alx-polly/auth"
	"github.com/Robinson7070/alx-polly/cliparse"
	"github.com/Robinson7070/alx-polly/middleware"
	"github.com/Robinson7070/alx-polly/models"
	"github.com/Robinson7070/alx-polly/store"
)

// Vote rejection messages. Clients show these to the voter as-is.
const (
	MsgVoteRecorded  = "Vote recorded"
	MsgAlreadyVoted  = "Already voted"
	MsgInvalidOption = "Invalid option"
	MsgPollNotFound  = "Poll not found"
)

type VotingHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(st store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg}
}

// SubmitVote handles POST /polls/{id}/votes
// Signed-in callers vote as themselves, anonymous callers by hashed client IP.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if pollID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.OptionIndex == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option_index is required")
		return
	}

	voterKey, err := h.voterKey(r)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	err = h.store.CastVote(r.Context(), pollID, voterKey, *req.OptionIndex)
	switch {
	case errors.Is(err, models.ErrPollNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, MsgPollNotFound)
		return
	case errors.Is(err, models.ErrInvalidOption):
		middleware.ErrorResponse(w, http.StatusBadRequest, MsgInvalidOption)
		return
	case errors.Is(err, models.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusConflict, MsgAlreadyVoted)
		return
	case err != nil:
		slog.Error("failed to cast vote", "poll_id", pollID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		return
	}

	slog.Info("vote recorded", "poll_id", pollID, "option_index", *req.OptionIndex)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		Message: MsgVoteRecorded,
	})
}

func (h *VotingHandler) voterKey(r *http.Request) (string, error) {
	user, err := currentUser(r, h.store)
	if err != nil {
		return "", err
	}
	if user != nil {
		return auth.UserVoterKey(user.ID), nil
	}
	return auth.AnonymousVoterKey(middleware.GetClientIP(r), h.cfg.VoterKeySalt), nil
}
