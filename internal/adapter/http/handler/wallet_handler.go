package handler

import (
	"errors"
	"net/http"

	"player-wallet-service/internal/adapter/http/dto"
	"player-wallet-service/internal/core/domain"
	"player-wallet-service/internal/core/ports"
	"player-wallet-service/pkg/apperror"
	"player-wallet-service/pkg/metrics"
	"player-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletHandler handles wallet endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	metrics   *metrics.Metrics // nil = metrics disabled
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, m *metrics.Metrics) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, metrics: m}
}

// ApplyTransaction handles PUT /api/v1/wallets/:walletID.
// PUT because the operation is idempotent: resubmitting the same
// transaction id replays the original outcome.
func (h *WalletHandler) ApplyTransaction(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	var req dto.ApplyTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		response.Error(c, apperror.Validation("invalid transaction id"))
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.Error(c, apperror.Validation("invalid amount"))
		return
	}
	txType, ok := domain.ParseTransactionType(req.Type)
	if !ok {
		response.Error(c, apperror.ErrUnknownTransactionType(req.Type))
		return
	}

	outcome, err := h.walletSvc.ApplyTransaction(c.Request.Context(), ports.ApplyTransactionRequest{
		WalletID:      walletID,
		TransactionID: txID,
		Type:          txType,
		Amount:        amount,
	})
	if err != nil {
		h.observeError(err)
		response.Error(c, err)
		return
	}

	h.observeOutcome(string(txType), outcome)
	response.JSON(c, outcomeStatus(outcome), dto.NewTransactionOutcomeResponse(outcome))
}

// GetBalance handles GET /api/v1/wallets/:walletID.
func (h *WalletHandler) GetBalance(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("walletID"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wallet id"))
		return
	}

	balance, err := h.walletSvc.GetBalance(c.Request.Context(), walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{
		WalletID: walletID.String(),
		Balance:  balance.String(),
	})
}

// outcomeStatus maps a terminal outcome to its HTTP status. A replayed
// commit answers 200 rather than 201 since nothing was created.
func outcomeStatus(o *domain.TransactionOutcome) int {
	switch o.Kind {
	case domain.OutcomeCommitted:
		if o.Repeated {
			return http.StatusOK
		}
		return http.StatusCreated
	case domain.OutcomeRejectedNegativeBalance:
		return http.StatusUnprocessableEntity
	case domain.OutcomeRejectedValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *WalletHandler) observeOutcome(txType string, o *domain.TransactionOutcome) {
	if h.metrics == nil {
		return
	}
	h.metrics.ObserveTransaction(txType, string(o.Kind))
	if o.Repeated {
		h.metrics.ObserveReplay()
	}
}

func (h *WalletHandler) observeError(err error) {
	if h.metrics == nil {
		return
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code == "WLT_002" {
		h.metrics.ObserveConflict()
	}
}
