package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"unahotel/internal/domain/catalog"
)

type CatalogHandler struct {
	Rooms    catalog.RoomRepository
	Services catalog.ServiceRepository
}

type roomResponse struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Capacity    int    `json:"capacity"`
	NightlyRate int64  `json:"nightly_rate"`
	Currency    string `json:"currency"`
}

// ListRooms returns the bookable inventory. With dates in the query the
// response is filtered to rooms free for that range.
func (h CatalogHandler) ListRooms(c *gin.Context) {
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")

	rooms, err := h.Rooms.Available(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomResponse{
			ID:          string(room.ID),
			Type:        room.Type,
			Capacity:    room.Capacity,
			NightlyRate: room.NightlyRate.Amount,
			Currency:    room.NightlyRate.Currency,
		})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

type serviceResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
}

func (h CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Services.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceResponse{
			ID:       string(svc.ID),
			Name:     svc.Name,
			Price:    svc.Price.Amount,
			Currency: svc.Price.Currency,
		})
	}
	c.JSON(http.StatusOK, gin.H{"services": out})
}

var _ CatalogHTTP = CatalogHandler{}
