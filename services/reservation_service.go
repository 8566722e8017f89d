package services

import (
	"errors"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
)

const (
	timestampLayout = "2006-01-02 15:04"
	dateLayout      = "2006-01-02"
	timeLayout      = "15:04"

	minTableNumber = 1
	maxTableNumber = 15

	defaultGuestCount = 2
)

type ReservationService struct {
	DB        *gorm.DB
	customers *CustomerService
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{
		DB:        db,
		customers: NewCustomerService(db),
	}
}

// ReservationRow is a reservation joined with its customer, as listed in the
// manager view. ReservationDate is formatted YYYY-MM-DD HH:MM.
type ReservationRow struct {
	ID              uint   `json:"id"`
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	TableNumber     int    `json:"table_number"`
	ReservationDate string `json:"reservation_date"`
	GuestCount      int    `json:"guest_count"`
}

// EditRow is a single reservation with date and time decomposed for the edit
// form (YYYY-MM-DD and HH:MM).
type EditRow struct {
	ID            uint   `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Date          string `json:"reservation_date"`
	Time          string `json:"reservation_time"`
	GuestCount    int    `json:"guest_count"`
}

type CreateInput struct {
	CustomerName  string
	CustomerPhone string
	Date          string
	Time          string
	GuestCount    int
}

type EditInput struct {
	CustomerName  string
	CustomerPhone string
	Date          string
	Time          string
	GuestCount    int
}

// combineDateTime merges separate date and time fields into one timestamp.
func combineDateTime(date, clock string) (time.Time, error) {
	ts, err := time.Parse(timestampLayout, date+" "+clock)
	if err != nil {
		return time.Time{}, ErrBadDateTime
	}
	return ts, nil
}

// Create validates the booking input, resolves the customer and inserts the
// reservation. The table number is drawn uniformly from 1-15 with no
// availability check, so double bookings at the same table are possible.
func (rs *ReservationService) Create(in CreateInput) (*models.Reservation, error) {
	if in.CustomerName == "" || in.CustomerPhone == "" || in.Date == "" || in.Time == "" {
		return nil, ErrMissingFields
	}

	timestamp, err := combineDateTime(in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	guests := in.GuestCount
	if guests == 0 {
		guests = defaultGuestCount
	}
	if guests < 0 {
		return nil, ErrBadGuestCount
	}

	customerID, err := rs.customers.FindOrCreate(in.CustomerName, in.CustomerPhone)
	if err != nil {
		return nil, err
	}

	reservation := models.Reservation{
		CustomerID:      customerID,
		TableNumber:     minTableNumber + rand.Intn(maxTableNumber-minTableNumber+1),
		ReservationDate: timestamp,
		GuestCount:      guests,
	}
	if err := rs.DB.Create(&reservation).Error; err != nil {
		return nil, err
	}
	return &reservation, nil
}

// UpdateSchedule changes only the date/time and guest count of a reservation.
func (rs *ReservationService) UpdateSchedule(id uint, date, clock string, guests int) error {
	timestamp, err := combineDateTime(date, clock)
	if err != nil {
		return err
	}
	if guests < 1 {
		return ErrBadGuestCount
	}

	var reservation models.Reservation
	if err := rs.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	reservation.ReservationDate = timestamp
	reservation.GuestCount = guests
	return rs.DB.Save(&reservation).Error
}

// UpdateFull is the full edit variant: besides the schedule it rewrites the
// linked customer's name and phone in place. Other reservations referencing
// the same customer see the change too.
func (rs *ReservationService) UpdateFull(id uint, in EditInput) error {
	if in.CustomerName == "" || in.CustomerPhone == "" {
		return ErrMissingFields
	}
	timestamp, err := combineDateTime(in.Date, in.Time)
	if err != nil {
		return err
	}
	if in.GuestCount < 1 {
		return ErrBadGuestCount
	}

	var reservation models.Reservation
	if err := rs.DB.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := rs.DB.Model(&models.Customer{}).
		Where("id = ?", reservation.CustomerID).
		Updates(map[string]interface{}{"name": in.CustomerName, "phone": in.CustomerPhone}).Error; err != nil {
		return err
	}

	reservation.ReservationDate = timestamp
	reservation.GuestCount = in.GuestCount
	return rs.DB.Save(&reservation).Error
}

// Delete removes a reservation. Deleting an unknown id affects zero rows and
// is not an error.
func (rs *ReservationService) Delete(id uint) error {
	return rs.DB.Delete(&models.Reservation{}, id).Error
}

type joinedRecord struct {
	ID              uint
	CustomerName    string
	CustomerPhone   string
	TableNumber     int
	ReservationDate time.Time
	GuestCount      int
}

func (rs *ReservationService) joinedQuery() *gorm.DB {
	return rs.DB.Model(&models.Reservation{}).
		Select("reservations.id, customers.name AS customer_name, customers.phone AS customer_phone, " +
			"reservations.table_number, reservations.reservation_date, reservations.guest_count").
		Joins("JOIN customers ON customers.id = reservations.customer_id")
}

// Search lists reservations joined with customers, ordered by reservation
// timestamp ascending. Non-empty patterns filter by substring on customer
// name or phone (LIKE, OR-joined); both empty returns the full list.
func (rs *ReservationService) Search(namePattern, phonePattern string) ([]ReservationRow, error) {
	query := rs.joinedQuery().Order("reservations.reservation_date ASC")

	switch {
	case namePattern != "" && phonePattern != "":
		query = query.Where("customers.name LIKE ? OR customers.phone LIKE ?",
			"%"+namePattern+"%", "%"+phonePattern+"%")
	case namePattern != "":
		query = query.Where("customers.name LIKE ?", "%"+namePattern+"%")
	case phonePattern != "":
		query = query.Where("customers.phone LIKE ?", "%"+phonePattern+"%")
	}

	var records []joinedRecord
	if err := query.Scan(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]ReservationRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, ReservationRow{
			ID:              rec.ID,
			CustomerName:    rec.CustomerName,
			CustomerPhone:   rec.CustomerPhone,
			TableNumber:     rec.TableNumber,
			ReservationDate: rec.ReservationDate.Format(timestampLayout),
			GuestCount:      rec.GuestCount,
		})
	}
	return rows, nil
}

// GetForEdit fetches one reservation with the timestamp decomposed back into
// its date and time parts.
func (rs *ReservationService) GetForEdit(id uint) (*EditRow, error) {
	var rec joinedRecord
	if err := rs.joinedQuery().Where("reservations.id = ?", id).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &EditRow{
		ID:            rec.ID,
		CustomerName:  rec.CustomerName,
		CustomerPhone: rec.CustomerPhone,
		Date:          rec.ReservationDate.Format(dateLayout),
		Time:          rec.ReservationDate.Format(timeLayout),
		GuestCount:    rec.GuestCount,
	}, nil
}
