package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/academic-hub-api/internal/dto"
	"github.com/yukikurage/academic-hub-api/internal/services"
)

type GoalHandler struct {
	goalService *services.GoalService
}

func NewGoalHandler(goalService *services.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	goals, err := h.goalService.List(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Create(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Create(c.Request.Context(), actor.ID, services.CreateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Progress:    req.Progress,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.goalService.Update(c.Request.Context(), actor.ID, id, services.UpdateGoalInput{
		Title:           req.Title,
		Description:     req.Description,
		TargetDate:      req.TargetDate,
		ClearTargetDate: req.ClearTargetDate,
		Progress:        req.Progress,
		Completed:       req.Completed,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

// Toggle flips the completed flag.
func (h *GoalHandler) Toggle(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.Toggle(c.Request.Context(), actor.ID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	if err := h.goalService.Delete(c.Request.Context(), actor.ID, id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
