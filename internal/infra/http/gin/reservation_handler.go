package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reservationapp "unahotel/internal/app/handlers/reservation"
	"unahotel/internal/domain/catalog"
	domainreservation "unahotel/internal/domain/reservation"
)

type ReservationHandler struct {
	Quote        *reservationapp.QuoteHandler
	Create       *reservationapp.CreateReservationHandler
	Cancel       *reservationapp.CancelReservationHandler
	Reservations domainreservation.Repository
}

type draftRequest struct {
	CheckInDate      string   `json:"check_in_date"`
	CheckOutDate     string   `json:"check_out_date"`
	NumberOfAdults   int      `json:"number_of_adults"`
	NumberOfChildren int      `json:"number_of_children"`
	NumberOfInfants  int      `json:"number_of_infants"`
	RoomIDs          []string `json:"room_ids"`
	ServiceIDs       []string `json:"service_ids"`
	SpecialRequests  string   `json:"special_requests"`
}

func (r draftRequest) toDraft() domainreservation.Draft {
	d := domainreservation.Draft{
		CheckInDate:      r.CheckInDate,
		CheckOutDate:     r.CheckOutDate,
		NumberOfAdults:   r.NumberOfAdults,
		NumberOfChildren: r.NumberOfChildren,
		NumberOfInfants:  r.NumberOfInfants,
		SpecialRequests:  r.SpecialRequests,
	}
	for _, id := range r.RoomIDs {
		d.SelectedRoomIDs = append(d.SelectedRoomIDs, catalog.RoomID(id))
	}
	for _, id := range r.ServiceIDs {
		d.SelectedServiceIDs = append(d.SelectedServiceIDs, catalog.ServiceID(id))
	}
	return d
}

// QuoteStay recomputes a draft: derived counts, the field error map and,
// when the draft validates, the totals. The UI calls this on every change.
func (h ReservationHandler) QuoteStay(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Quote.Handle(c.Request.Context(), reservationapp.QuoteQuery{Draft: req.toDraft()})
	if err != nil {
		writeCatalogError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type createReservationRequest struct {
	GuestID string       `json:"guest_id"`
	Draft   draftRequest `json:"draft"`
}

func (h ReservationHandler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	result, err := h.Create.Handle(c.Request.Context(), reservationapp.CreateReservationCommand{
		GuestID: req.GuestID,
		Draft:   req.Draft.toDraft(),
	})
	if err != nil {
		if errors.Is(err, domainreservation.ErrGuestRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		writeCatalogError(c, err)
		return
	}
	if len(result.Errors) > 0 {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

type cancelReservationRequest struct {
	Note string `json:"note"`
}

func (h ReservationHandler) CancelReservation(c *gin.Context) {
	var req cancelReservationRequest
	// The note body is optional; an empty request cancels without one.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	result, err := h.Cancel.Handle(c.Request.Context(), reservationapp.CancelReservationCommand{
		ReservationID: c.Param("id"),
		Note:          req.Note,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainreservation.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domainreservation.ErrInvalidState):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

type reservationResponse struct {
	ID                 string `json:"id"`
	ConfirmationNumber string `json:"confirmation_number"`
	GuestID            string `json:"guest_id"`
	CheckInDate        string `json:"check_in_date"`
	CheckOutDate       string `json:"check_out_date"`
	Adults             int    `json:"adults"`
	Children           int    `json:"children"`
	Infants            int    `json:"infants"`
	State              string `json:"state"`
	SpecialRequests    string `json:"special_requests,omitempty"`
	CancellationNote   string `json:"cancellation_note,omitempty"`

	RoomIDs    []string              `json:"room_ids"`
	ServiceIDs []string              `json:"service_ids,omitempty"`
	Price      reservationPriceBlock `json:"price"`
}

type reservationPriceBlock struct {
	Subtotal        int64  `json:"subtotal"`
	ServicesTotal   int64  `json:"services_total"`
	Taxes           int64  `json:"taxes"`
	Total           int64  `json:"total"`
	DepositRequired int64  `json:"deposit_required"`
	Currency        string `json:"currency"`
}

func (h ReservationHandler) GetReservation(c *gin.Context) {
	res, err := h.Reservations.ByID(c.Request.Context(), domainreservation.ID(c.Param("id")))
	if err != nil {
		if errors.Is(err, domainreservation.ErrReservationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := reservationResponse{
		ID:                 string(res.ID),
		ConfirmationNumber: res.ConfirmationNumber,
		GuestID:            res.GuestID,
		CheckInDate:        res.CheckInDate,
		CheckOutDate:       res.CheckOutDate,
		Adults:             res.Adults,
		Children:           res.Children,
		Infants:            res.Infants,
		State:              string(res.State),
		SpecialRequests:    res.SpecialRequests,
		CancellationNote:   res.CancellationNote,
		Price: reservationPriceBlock{
			Subtotal:        res.Price.Subtotal.Amount,
			ServicesTotal:   res.Price.ServicesTotal.Amount,
			Taxes:           res.Price.Taxes.Amount,
			Total:           res.Price.Total.Amount,
			DepositRequired: res.Price.DepositRequired.Amount,
			Currency:        res.Price.Total.Currency,
		},
	}
	for _, id := range res.RoomIDs {
		out.RoomIDs = append(out.RoomIDs, string(id))
	}
	for _, id := range res.ServiceIDs {
		out.ServiceIDs = append(out.ServiceIDs, string(id))
	}
	c.JSON(http.StatusOK, out)
}

func writeCatalogError(c *gin.Context, err error) {
	if errors.Is(err, catalog.ErrRoomNotFound) || errors.Is(err, catalog.ErrServiceNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

var _ ReservationHTTP = ReservationHandler{}
