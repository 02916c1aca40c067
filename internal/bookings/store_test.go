package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wolfman30/salon-portal/internal/calendar"
	"github.com/wolfman30/salon-portal/pkg/logging"
)

var bookingColumns = []string{
	"id", "customer_id", "booking_date", "booking_time", "status", "status_label",
	"stylist", "branch", "services", "special_notes",
}

func TestStoreListMonthGroupsRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	march := calendar.Month{Year: 2025, Month: time.March}
	d15 := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	d20 := time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, customer_id, booking_date").
		WithArgs("cust-1", march.Start(), march.End()).
		WillReturnRows(pgxmock.NewRows(bookingColumns).
			AddRow("b1", "cust-1", d15, "10:00", 1, "Confirmed", "Mia", "Orchard", []string{"Haircut"}, "").
			AddRow("b2", "cust-1", d15, "14:00", 3, "Cancelled", "Mia", "Orchard", []string{"Colour"}, "late").
			AddRow("b3", "cust-1", d20, "09:00", 2, "Completed", "Ken", "Bugis", []string{"Wash"}, ""))

	store := NewStore(mock, logging.Default())
	days, err := store.ListMonth(context.Background(), "cust-1", march)
	require.NoError(t, err)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-03-15", days[0].Date)
	require.Len(t, days[0].Confirmed, 1)
	assert.Equal(t, "Mia", days[0].Confirmed[0].Stylist)
	require.Len(t, days[0].Cancelled, 1)
	assert.Equal(t, "late", days[0].Cancelled[0].SpecialNotes)
	assert.Equal(t, "2025-03-20", days[1].Date)
	assert.Len(t, days[1].Completed, 1)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListMonthWrapsQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, customer_id").WillReturnError(errors.New("boom"))

	store := NewStore(mock, logging.Default())
	_, err = store.ListMonth(context.Background(), "cust-1", calendar.Month{Year: 2025, Month: time.March})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bookings: list month")
}

func TestStoreCreateInsertsRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(pgxmock.AnyArg(), "cust-1", time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			"10:00", 1, "Confirmed", "Mia", "Orchard", []string{"Haircut"}, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewStore(mock, logging.Default())
	b := &Booking{
		CustomerID:  "cust-1",
		BookingDate: "2025-03-15",
		BookingTime: "10:00",
		Status:      StatusConfirmed,
		Stylist:     "Mia",
		Branch:      "Orchard",
		Services:    []string{"Haircut"},
	}
	require.NoError(t, store.Create(context.Background(), b))
	assert.NotEmpty(t, b.ID)
	assert.Equal(t, "Confirmed", b.StatusLabel)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreateRejectsBadDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewStore(mock, logging.Default())
	err = store.Create(context.Background(), &Booking{CustomerID: "cust-1", BookingDate: "15/03/2025"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
