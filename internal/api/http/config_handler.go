package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tabletop-arena/internal/config"
	"tabletop-arena/internal/game"
)

type ConfigHandler struct {
	cfg   config.Config
	types []game.Type
}

func NewConfigHandler(cfg config.Config, types []game.Type) *ConfigHandler {
	return &ConfigHandler{cfg: cfg, types: types}
}

// GetConfig returns the public configuration
// @Summary Get public configuration
// @Description Returns the minimum stake, turn timeouts, playable game types and Ludo limits
// @Tags Config
// @Produce json
// @Success 200 {object} ConfigResponse
// @Router /api/config [get]
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	types := make([]string, 0, len(h.types))
	for _, t := range h.types {
		types = append(types, string(t))
	}
	c.JSON(http.StatusOK, ConfigResponse{
		MinStake:           h.cfg.MinStake,
		TurnTimeoutMs:      h.cfg.TurnTimeout.Milliseconds(),
		FirstTurnTimeoutMs: h.cfg.FirstTurnTimeout.Milliseconds(),
		GameTypes:          types,
		Ludo: LudoLimits{
			PlayerCounts: []int{2, 4},
			WinPinCounts: []int{1, 2, 4},
		},
	})
}
