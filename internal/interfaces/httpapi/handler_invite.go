package httpapi

import (
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/f1mates/league-api/internal/domain/invite"
	"github.com/f1mates/league-api/internal/usecase"
)

type invitationDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func invitationToDTO(item invite.Invitation) invitationDTO {
	return invitationDTO{
		ID:        item.ID,
		Email:     item.Email,
		Code:      item.Code,
		Status:    string(item.Status),
		CreatedAt: item.CreatedAt,
	}
}

type sendInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) ListMyInvitations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyInvitations")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	invitations, err := h.inviteService.ListSent(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]invitationDTO, 0, len(invitations))
	for _, item := range invitations {
		items = append(items, invitationToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SendInvitation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SendInvitation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req sendInvitationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.inviteService.Send(ctx, usecase.SendInviteInput{
		SenderID: principal.UserID,
		Email:    req.Email,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "send invitation failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, invitationToDTO(item))
}
