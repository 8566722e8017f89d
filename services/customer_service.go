package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/reservation-app/models"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

// FindOrCreate resolves a customer identity from (name, phone), creating the
// customer on first encounter. The insert runs with ON CONFLICT DO NOTHING
// against the unique (name, phone) index, so two concurrent calls with the
// same new identity cannot both insert.
func (cs *CustomerService) FindOrCreate(name, phone string) (uint, error) {
	if name == "" || phone == "" {
		return 0, ErrMissingFields
	}

	customer := models.Customer{Name: name, Phone: phone}
	if err := cs.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&customer).Error; err != nil {
		return 0, err
	}
	if customer.ID != 0 {
		return customer.ID, nil
	}

	// Conflict path: the identity already exists, fetch it.
	if err := cs.DB.Where("name = ? AND phone = ?", name, phone).First(&customer).Error; err != nil {
		return 0, err
	}
	return customer.ID, nil
}
