package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/rslakra/BankService/internal/auth"
	"github.com/rslakra/BankService/internal/domain"
	"github.com/rslakra/BankService/internal/logging"
)

type userProfileRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, fullName string, phoneNumber *string) error
}

type UserHandler struct {
	users userProfileRepo
}

func NewUserHandler(users userProfileRepo) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		logging.FromContext(r.Context()).Error("failed to get user", "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toUserDTO(user))
}

type updateProfileRequest struct {
	FullName    *string `json:"full_name"`
	PhoneNumber *string `json:"phone_number"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		RespondAppError(w, ErrMissingToken, nil)
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondAppError(w, ErrInvalidRequest, nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	fullName := user.FullName
	if req.FullName != nil && *req.FullName != "" {
		fullName = *req.FullName
	}
	phone := user.PhoneNumber
	if req.PhoneNumber != nil {
		phone = req.PhoneNumber
	}

	if err := h.users.UpdateProfile(r.Context(), userID, fullName, phone); err != nil {
		logging.FromContext(r.Context()).Error("failed to update profile", "error", err)
		RespondDomainError(w, err)
		return
	}

	user.FullName = fullName
	user.PhoneNumber = phone
	RespondSuccess(w, http.StatusOK, toUserDTO(user))
}
