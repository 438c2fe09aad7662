package resolver

import (
	"testing"

	"materials-billing-backend/internal/models"
	"materials-billing-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVehicleNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "tn32ax3344", want: "TN32AX3344"},
		{in: " TN32AX3344 ", want: "TN32AX3344"},
		{in: "KA05M1234", want: "KA05M1234"},
		{in: "TN32A334", wantErr: true},
		{in: "1234TN32", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeVehicleNumber(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidVehicleNo, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolveCustomerCreates(t *testing.T) {
	db := testutil.NewDB(t)

	customer, err := ResolveCustomer(db, CustomerInput{
		Name:  "Sri Traders",
		Phone: "9788388823",
	})
	require.NoError(t, err)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "9788388823", *customer.Phone)
	assert.Nil(t, customer.GSTNumber)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResolveCustomerFirstWriteWins(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := ResolveCustomer(db, CustomerInput{Name: "Sri Traders"})
	require.NoError(t, err)

	// First incoming phone fills the blank.
	customer, err := ResolveCustomer(db, CustomerInput{Name: "Sri Traders", Phone: "111"})
	require.NoError(t, err)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "111", *customer.Phone)

	// A different phone later leaves the stored one untouched.
	customer, err = ResolveCustomer(db, CustomerInput{Name: "Sri Traders", Phone: "222", Address: "Main Road"})
	require.NoError(t, err)
	require.NotNil(t, customer.Phone)
	assert.Equal(t, "111", *customer.Phone)
	require.NotNil(t, customer.Address)
	assert.Equal(t, "Main Road", *customer.Address)

	var stored models.Customer
	require.NoError(t, db.First(&stored, "name = ?", "Sri Traders").Error)
	assert.Equal(t, "111", *stored.Phone)

	var count int64
	db.Model(&models.Customer{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestResolveCustomerRejectsEmptyName(t *testing.T) {
	db := testutil.NewDB(t)
	_, err := ResolveCustomer(db, CustomerInput{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyCustomerName)
}

func TestResolveVehicleCreatesNormalized(t *testing.T) {
	db := testutil.NewDB(t)

	vehicle, err := ResolveVehicle(db, VehicleInput{Number: "tn32ax3344", VehicleType: "Truck"})
	require.NoError(t, err)
	assert.Equal(t, "TN32AX3344", vehicle.VehicleNumber)
	require.NotNil(t, vehicle.VehicleType)
	assert.Equal(t, "Truck", *vehicle.VehicleType)
}

func TestResolveVehicleRejectsWithoutPersisting(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := ResolveVehicle(db, VehicleInput{Number: "TN32A334"})
	assert.ErrorIs(t, err, ErrInvalidVehicleNo)

	var count int64
	db.Model(&models.Vehicle{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestResolveVehicleMergeKeepsExistingType(t *testing.T) {
	db := testutil.NewDB(t)

	_, err := ResolveVehicle(db, VehicleInput{Number: "TN32AX3344", VehicleType: "Truck"})
	require.NoError(t, err)

	vehicle, err := ResolveVehicle(db, VehicleInput{Number: "TN32AX3344", VehicleType: "Lorry"})
	require.NoError(t, err)
	require.NotNil(t, vehicle.VehicleType)
	assert.Equal(t, "Truck", *vehicle.VehicleType)
}
