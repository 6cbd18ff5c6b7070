package services

import (
	"testing"
	"time"

	"hotelsite-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBookingFixture(t *testing.T) (*BookingService, *models.User, *models.User, models.Room) {
	t.Helper()
	db := newTestDB(t)
	auth := NewAuthService(db)
	rooms := NewRoomService(db)
	svc := NewBookingService(db, auth, rooms)

	alice := registerTestUser(t, auth, "alice", "alice@example.com", "secret123")
	bob := registerTestUser(t, auth, "bob", "bob@example.com", "secret123")

	room := models.Room{Number: "101", RoomType: models.RoomTypeDouble, Capacity: 2}
	require.NoError(t, rooms.Create(&room, nil, nil, nil, nil))

	return svc, alice, bob, room
}

func datesFor(nights int) (time.Time, time.Time) {
	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return checkIn, checkIn.AddDate(0, 0, nights)
}

func TestCreateForcesOwnerAndPendingStatus(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(2)
	booking, err := svc.Create(alice.ID, BookingInput{
		RoomID:   room.ID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, booking.UserID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
}

func TestCreateRejectsInvertedDateRange(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(2)
	_, err := svc.Create(alice.ID, BookingInput{
		RoomID:   room.ID,
		CheckIn:  checkOut,
		CheckOut: checkIn,
		Guests:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestBookingInvisibleToOtherUsers(t *testing.T) {
	svc, alice, bob, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(1)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	bobsList, err := svc.ListForUser(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobsList)

	_, err = svc.GetForUser(booking.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// the admin collection still sees it
	all, err := svc.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, booking.ID, all[0].ID)
}

func TestOwnerCannotChangeStatus(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(1)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateForUser(booking.ID, alice.ID, map[string]any{
		"status": models.BookingStatusConfirmed,
		"guests": 2,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, updated.Status)
	assert.Equal(t, 2, updated.Guests)
}

func TestUpdateRejectsInvertedDateRange(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(2)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	// moving check_out before the stored check_in must fail
	_, err = svc.UpdateForUser(booking.ID, alice.ID, map[string]any{
		"check_out": checkIn.AddDate(0, 0, -5),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.AdminUpdate(booking.ID, map[string]any{
		"check_in": checkOut.AddDate(0, 0, 3),
	})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	// both dates moved together stay valid
	updated, err := svc.UpdateForUser(booking.ID, alice.ID, map[string]any{
		"check_in":  checkIn.AddDate(0, 0, 7),
		"check_out": checkOut.AddDate(0, 0, 7),
	})
	require.NoError(t, err)
	assert.True(t, updated.CheckIn.Equal(checkIn.AddDate(0, 0, 7)))
}

func TestOwnerMovesBookingToAnotherRoom(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	other := models.Room{Number: "102", RoomType: models.RoomTypeSingle, Capacity: 1}
	require.NoError(t, svc.Rooms.Create(&other, nil, nil, nil, nil))

	checkIn, checkOut := datesFor(1)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	updated, err := svc.UpdateForUser(booking.ID, alice.ID, map[string]any{"room_id": other.ID})
	require.NoError(t, err)
	assert.Equal(t, other.ID, updated.RoomID)
	assert.Equal(t, "102", updated.Room.Number)

	_, err = svc.UpdateForUser(booking.ID, alice.ID, map[string]any{"room_id": uint(9999)})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestAdminTransitionsStatus(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(1)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	updated, err := svc.AdminUpdate(booking.ID, map[string]any{"status": models.BookingStatusConfirmed})
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)

	_, err = svc.AdminUpdate(booking.ID, map[string]any{"status": "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteScopedToOwner(t *testing.T) {
	svc, alice, bob, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(1)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 1})
	require.NoError(t, err)

	err = svc.DeleteForUser(booking.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, svc.DeleteForUser(booking.ID, alice.ID))
}

func TestSerializeIncludesRoomDetailAndDates(t *testing.T) {
	svc, alice, _, room := newBookingFixture(t)

	checkIn, checkOut := datesFor(3)
	booking, err := svc.Create(alice.ID, BookingInput{RoomID: room.ID, CheckIn: checkIn, CheckOut: checkOut, Guests: 2})
	require.NoError(t, err)

	resp := svc.Serialize(&booking, nil)
	assert.Equal(t, "2026-09-01", resp.CheckIn)
	assert.Equal(t, "2026-09-04", resp.CheckOut)
	assert.Equal(t, room.ID, resp.Room)
	assert.Equal(t, "101", resp.RoomDetail.Number)
	assert.Equal(t, "alice", resp.User.Username)
}
