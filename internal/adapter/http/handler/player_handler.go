package handler

import (
	"player-wallet-service/internal/adapter/http/dto"
	"player-wallet-service/internal/core/ports"
	"player-wallet-service/pkg/apperror"
	"player-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlayerHandler handles player registration and listing.
type PlayerHandler struct {
	playerSvc ports.PlayerService
}

// NewPlayerHandler creates a new PlayerHandler.
func NewPlayerHandler(playerSvc ports.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerSvc: playerSvc}
}

// Register handles POST /api/v1/players.
func (h *PlayerHandler) Register(c *gin.Context) {
	var req dto.RegisterPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	id, err := uuid.Parse(req.ID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid player id"))
		return
	}
	birthDate, err := req.ParseBirthDate()
	if err != nil {
		response.Error(c, apperror.Validation("invalid birth date"))
		return
	}

	result, err := h.playerSvc.Register(c.Request.Context(), ports.RegisterPlayerRequest{
		TransactionID: id,
		Name:          req.Name,
		BirthDate:     birthDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := dto.NewPlayerResponse(&result.Player)
	resp.WalletID = result.WalletID.String()
	resp.Repeated = result.Repeated

	if result.Repeated {
		response.OK(c, resp)
		return
	}
	response.Created(c, resp)
}

// List handles GET /api/v1/players.
func (h *PlayerHandler) List(c *gin.Context) {
	players, err := h.playerSvc.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.PlayerResponse, 0, len(players))
	for i := range players {
		items = append(items, dto.NewPlayerResponse(&players[i]))
	}
	response.OK(c, items)
}
