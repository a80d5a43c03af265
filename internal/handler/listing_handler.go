package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hustlx/backend/internal/httperr"
	"github.com/hustlx/backend/internal/models"
	"github.com/hustlx/backend/internal/repository"
	"github.com/hustlx/backend/internal/service"
)

type ListingHandler struct {
	listingService *service.ListingService
}

func NewListingHandler(listingService *service.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

type CreateListingRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       int64    `json:"price" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
}

type UpdateListingRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *int64   `json:"price"`
	Category    *string  `json:"category"`
	Tags        []string `json:"tags"`
	Status      *string  `json:"status"`
}

func (h *ListingHandler) Create(c *gin.Context) {
	callerID, role, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	listing, err := h.listingService.Create(callerID, role, service.ListingInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Type:        models.ListingType(req.Type),
		Category:    req.Category,
		Tags:        req.Tags,
		Status:      models.ListingStatus(req.Status),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"listing": listing})
}

// Search is public. All filters are AND-combined.
func (h *ListingHandler) Search(c *gin.Context) {
	filter := repository.ListingFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Type:     models.ListingType(c.Query("type")),
		Tag:      c.Query("tag"),
	}
	if v := c.Query("min_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MinPrice = p
		}
	}
	if v := c.Query("max_price"); v != "" {
		if p, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.MaxPrice = p
		}
	}

	listings, err := h.listingService.Search(filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

func (h *ListingHandler) Featured(c *gin.Context) {
	listings, err := h.listingService.Featured()
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

func (h *ListingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	listing, err := h.listingService.GetByID(id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

func (h *ListingHandler) Update(c *gin.Context) {
	callerID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	update := service.ListingUpdate{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if req.Status != nil {
		status := models.ListingStatus(*req.Status)
		update.Status = &status
	}

	listing, err := h.listingService.Update(callerID, id, update)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"listing": listing})
}

func (h *ListingHandler) Delete(c *gin.Context) {
	callerID, _, ok := identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	if err := h.listingService.Delete(callerID, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "listing deleted"})
}
