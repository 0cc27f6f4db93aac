package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/achievements"
	"github.com/yukikurage/academic-hub-api/internal/dto"
)

type AchievementHandler struct {
	engine *achievements.Engine
}

func NewAchievementHandler(engine *achievements.Engine) *AchievementHandler {
	return &AchievementHandler{
		engine: engine,
	}
}

// List returns the caller's earned achievements, oldest first.
func (h *AchievementHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	earned, err := h.engine.List(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAchievementDTOs(earned))
}

// Catalog returns every achievement that can be earned.
func (h *AchievementHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, achievements.Catalog())
}
