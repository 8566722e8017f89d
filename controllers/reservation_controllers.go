package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

var errDatabase = errors.New("database error")

type ReservationController struct {
	DB      *gorm.DB
	service *services.ReservationService
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{
		DB:      db,
		service: services.NewReservationService(db),
	}
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Data-access failures are hidden behind a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrBadDateTime),
		errors.Is(err, services.ErrBadGuestCount):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.ErrorLogger.Printf("Database error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errDatabase)
	}
}

func reservationID(c *gin.Context) uint {
	id, _ := strconv.Atoi(c.Param("reservation_id"))
	return uint(id)
}

// GetAllReservations -> list reservations, optionally filtered by customer
// name/phone substring (search_name / search_phone query params).
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	rows, err := rc.service.Search(c.Query("search_name"), c.Query("search_phone"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of reservations", rows)
}

// CreateReservation -> book a table for a customer (found or created from
// name+phone).
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	type reqBody struct {
		CustomerName    string `json:"customer_name"`
		CustomerPhone   string `json:"customer_phone"`
		ReservationDate string `json:"reservation_date"`
		ReservationTime string `json:"reservation_time"`
		GuestCount      int    `json:"guest_count"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.service.Create(services.CreateInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Date:          req.ReservationDate,
		Time:          req.ReservationTime,
		GuestCount:    req.GuestCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Reservation created (ID=%d) for customer %d at table %d",
		reservation.ID, reservation.CustomerID, reservation.TableNumber)

	utils.RespondJSON(c, http.StatusCreated, "Reservation added successfully!", reservation)
}

// UpdateReservation -> manager update variant: date/time and guest count only.
func (rc *ReservationController) UpdateReservation(c *gin.Context) {
	type reqBody struct {
		ReservationDate string `json:"reservation_date"`
		ReservationTime string `json:"reservation_time"`
		GuestCount      int    `json:"guest_count"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := rc.service.UpdateSchedule(reservationID(c), req.ReservationDate, req.ReservationTime, req.GuestCount); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully!", nil)
}

// EditReservation -> full edit variant: also rewrites the linked customer's
// name and phone in place.
func (rc *ReservationController) EditReservation(c *gin.Context) {
	type reqBody struct {
		CustomerName    string `json:"customer_name"`
		CustomerPhone   string `json:"customer_phone"`
		ReservationDate string `json:"reservation_date"`
		ReservationTime string `json:"reservation_time"`
		GuestCount      int    `json:"guest_count"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err := rc.service.UpdateFull(reservationID(c), services.EditInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Date:          req.ReservationDate,
		Time:          req.ReservationTime,
		GuestCount:    req.GuestCount,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated successfully!", nil)
}

// GetReservationForEdit -> single reservation with date/time split for the
// edit form.
func (rc *ReservationController) GetReservationForEdit(c *gin.Context) {
	row, err := rc.service.GetForEdit(reservationID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation detail", row)
}

// DeleteReservation -> remove a reservation. Unknown ids delete zero rows and
// still report success.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	id := reservationID(c)
	if err := rc.service.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation deleted successfully!", gin.H{"reservation_id": id})
}
