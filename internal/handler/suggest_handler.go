package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hustlx/backend/internal/httperr"
	"github.com/hustlx/backend/internal/service"
)

type SuggestHandler struct {
	suggestService *service.SuggestService
	userService    *service.UserService
	skillService   *service.SkillService
}

func NewSuggestHandler(suggestService *service.SuggestService, userService *service.UserService, skillService *service.SkillService) *SuggestHandler {
	return &SuggestHandler{
		suggestService: suggestService,
		userService:    userService,
		skillService:   skillService,
	}
}

// Suggestions returns AI skill suggestions for the caller. The suggestion
// service guarantees a payload: upstream failures fall back to a static
// list rather than erroring.
func (h *SuggestHandler) Suggestions(c *gin.Context) {
	callerID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	profile, err := h.userService.GetPublicProfile(callerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	skills, err := h.skillService.ListByOwner(callerID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	suggestions := h.suggestService.SuggestSkills(c.Request.Context(), callerID, *profile, skills)

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}
