package api

import (
	"net/http"
	"strconv"

	"github.com/akhilnair92/hosteldesk/internal/service/rooms"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service rooms.RoomUseCase
}

// Pointer fields let the service tell an omitted field from an explicit
// zero when applying defaults.
type createRoomRequest struct {
	Number    string  `json:"number"`
	Type      *string `json:"type"`
	Price     *int64  `json:"price"`
	Capacity  *int    `json:"capacity"`
	Available *bool   `json:"available"`
}

func NewRoomHandler(service rooms.RoomUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.POST("", h.create)
	router.DELETE("/:id", h.delete)
}

func (h *RoomHandler) list(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (h *RoomHandler) create(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.service.Create(c.Request.Context(), rooms.CreateRoomInput{
		Number:    req.Number,
		Type:      req.Type,
		Price:     req.Price,
		Capacity:  req.Capacity,
		Available: req.Available,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

func (h *RoomHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
