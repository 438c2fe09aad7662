package resolver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"materials-billing-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// vehiclePattern matches plates like TN32AX3344: two letters, two digits,
// one or two letters, four digits.
var vehiclePattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z]{1,2}\d{4}$`)

var (
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrInvalidVehicleNo  = errors.New("invalid vehicle number, expected format like TN32AX3344")
)

// CustomerInput is the customer portion of an invoice request. Optional
// fields only fill blanks on an existing record, existing values win.
type CustomerInput struct {
	Name      string
	GSTNumber string
	Phone     string
	Address   string
}

type VehicleInput struct {
	Number      string
	VehicleType string
}

// NormalizeVehicleNumber uppercases and validates a plate without touching
// the database.
func NormalizeVehicleNumber(number string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(number))
	if !vehiclePattern.MatchString(normalized) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVehicleNo, number)
	}
	return normalized, nil
}

// ResolveCustomer finds the customer by exact name or creates it. Optional
// fields merge first-write-wins: a populated field on the existing row is
// never overwritten. A create that loses an insert race against the unique
// name index falls back to lookup-and-merge.
func ResolveCustomer(tx *gorm.DB, input CustomerInput) (*models.Customer, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrEmptyCustomerName
	}

	var customer models.Customer
	err := tx.Where("name = ?", name).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			ID:        uuid.New(),
			Name:      name,
			GSTNumber: optional(input.GSTNumber),
			Phone:     optional(input.Phone),
			Address:   optional(input.Address),
			CreatedAt: time.Now(),
		}
		err = tx.Create(&customer).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another request created the same customer first.
			if err := tx.Where("name = ?", name).First(&customer).Error; err != nil {
				return nil, fmt.Errorf("failed to re-read customer after conflict: %w", err)
			}
			return mergeCustomer(tx, &customer, input)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create customer: %w", err)
		}
		return &customer, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	return mergeCustomer(tx, &customer, input)
}

func mergeCustomer(tx *gorm.DB, customer *models.Customer, input CustomerInput) (*models.Customer, error) {
	updates := map[string]interface{}{}
	if customer.GSTNumber == nil && strings.TrimSpace(input.GSTNumber) != "" {
		customer.GSTNumber = optional(input.GSTNumber)
		updates["gst_number"] = *customer.GSTNumber
	}
	if customer.Phone == nil && strings.TrimSpace(input.Phone) != "" {
		customer.Phone = optional(input.Phone)
		updates["phone"] = *customer.Phone
	}
	if customer.Address == nil && strings.TrimSpace(input.Address) != "" {
		customer.Address = optional(input.Address)
		updates["address"] = *customer.Address
	}
	if len(updates) == 0 {
		return customer, nil
	}
	if err := tx.Model(customer).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to merge customer fields: %w", err)
	}
	return customer, nil
}

// ResolveVehicle validates and normalizes the plate, then finds or creates
// the vehicle with the same merge policy as customers.
func ResolveVehicle(tx *gorm.DB, input VehicleInput) (*models.Vehicle, error) {
	number, err := NormalizeVehicleNumber(input.Number)
	if err != nil {
		return nil, err
	}

	var vehicle models.Vehicle
	err = tx.Where("vehicle_number = ?", number).First(&vehicle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		vehicle = models.Vehicle{
			ID:            uuid.New(),
			VehicleNumber: number,
			VehicleType:   optional(input.VehicleType),
			CreatedAt:     time.Now(),
		}
		err = tx.Create(&vehicle).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := tx.Where("vehicle_number = ?", number).First(&vehicle).Error; err != nil {
				return nil, fmt.Errorf("failed to re-read vehicle after conflict: %w", err)
			}
			return mergeVehicle(tx, &vehicle, input)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to create vehicle: %w", err)
		}
		return &vehicle, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up vehicle: %w", err)
	}

	return mergeVehicle(tx, &vehicle, input)
}

func mergeVehicle(tx *gorm.DB, vehicle *models.Vehicle, input VehicleInput) (*models.Vehicle, error) {
	if vehicle.VehicleType != nil || strings.TrimSpace(input.VehicleType) == "" {
		return vehicle, nil
	}
	vehicle.VehicleType = optional(input.VehicleType)
	if err := tx.Model(vehicle).Update("vehicle_type", *vehicle.VehicleType).Error; err != nil {
		return nil, fmt.Errorf("failed to merge vehicle fields: %w", err)
	}
	return vehicle, nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
