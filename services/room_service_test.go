package services

import (
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hotelsite-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeListField(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{"native list passthrough", []string{"wifi", "tv"}, []string{"wifi", "tv"}},
		{"json body list", []any{"wifi", "tv"}, []string{"wifi", "tv"}},
		{"json encoded string", `["wifi","tv"]`, []string{"wifi", "tv"}},
		{"plain string fallback", "wifi", []string{"wifi"}},
		{"empty string", "", []string{}},
		{"nil", nil, []string{}},
		{"unsupported type", 42, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeListField(tt.input))
		})
	}
}

func TestNormalizeListFieldIdempotent(t *testing.T) {
	once := NormalizeListField([]string{"wifi", "tv"})
	twice := NormalizeListField(once)
	assert.Equal(t, once, twice)
}

func TestResolveImageNoImagesAnywhere(t *testing.T) {
	room := models.Room{}
	assert.Equal(t, "", ResolveImage(&room, nil))
	assert.Empty(t, ResolveGallery(&room, nil))
}

func TestResolveImageFallsBackToGallery(t *testing.T) {
	room := models.Room{Images: []models.RoomImage{
		{Image: "rooms/gallery/a.jpg"},
		{Image: "rooms/gallery/b.jpg"},
	}}
	r := httptest.NewRequest("GET", "http://hotel.example/api/rooms", nil)
	assert.Equal(t, "http://hotel.example/uploads/rooms/gallery/a.jpg", ResolveImage(&room, r))
}

func TestResolveGalleryCoverFirst(t *testing.T) {
	room := models.Room{
		CoverImage: "rooms/cover.jpg",
		Images: []models.RoomImage{
			{Image: "rooms/gallery/new.jpg"},
			{Image: "rooms/gallery/old.jpg"},
		},
	}
	r := httptest.NewRequest("GET", "http://hotel.example/api/rooms", nil)

	assert.Equal(t, "http://hotel.example/uploads/rooms/cover.jpg", ResolveImage(&room, r))

	gallery := ResolveGallery(&room, r)
	require.Len(t, gallery, len(room.Images)+1)
	assert.Equal(t, "http://hotel.example/uploads/rooms/cover.jpg", gallery[0])
	assert.Equal(t, "http://hotel.example/uploads/rooms/gallery/new.jpg", gallery[1])
}

func TestGalleryDisplayOrderNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "101", RoomType: models.RoomTypeDouble}
	require.NoError(t, svc.Create(&room, nil, nil, nil, nil))

	now := time.Now()
	older := models.RoomImage{RoomID: room.ID, Image: "rooms/gallery/old.jpg", CreatedAt: now.Add(-time.Hour)}
	newer := models.RoomImage{RoomID: room.ID, Image: "rooms/gallery/new.jpg", CreatedAt: now}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Images, 2)
	assert.Equal(t, "rooms/gallery/new.jpg", loaded.Images[0].Image)
	assert.Equal(t, "rooms/gallery/old.jpg", loaded.Images[1].Image)

	// no cover: fallback image is the first gallery image in display order
	assert.Equal(t, "/uploads/rooms/gallery/new.jpg", ResolveImage(&loaded, nil))
}

func TestCreateNormalizesBothListFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "201", RoomType: models.RoomTypeSuite}
	require.NoError(t, svc.Create(&room, `["wifi","tv"]`, "balcony", nil, nil))

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	resp := svc.Serialize(&loaded, nil)
	assert.Equal(t, []string{"wifi", "tv"}, resp.Amenities)
	assert.Equal(t, []string{"balcony"}, resp.SpecialFeatures)
}

func TestCreateWithGalleryFiles(t *testing.T) {
	chTempDir(t)
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "301", RoomType: models.RoomTypeDouble}

	fh1 := fileHeader(t, "gallery_images", "one.jpg", "fake-jpeg-1")
	fh2 := fileHeader(t, "gallery_images", "two.jpg", "fake-jpeg-2")
	cover := fileHeader(t, "cover_image", "cover.jpg", "fake-cover")

	require.NoError(t, svc.Create(&room, nil, nil, cover, []*multipart.FileHeader{fh1, fh2}))

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.CoverImage)

	resp := svc.Serialize(&loaded, nil)
	// cover first, then both gallery rows
	assert.Len(t, resp.Gallery, 3)
	assert.NotEmpty(t, resp.Image)
}

func TestDuplicateRoomNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	first := models.Room{Number: "101", RoomType: models.RoomTypeDouble}
	require.NoError(t, svc.Create(&first, nil, nil, nil, nil))

	second := models.Room{Number: "101", RoomType: models.RoomTypeSingle}
	err := svc.Create(&second, nil, nil, nil, nil)
	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)
}

func TestUpdatePartialPreservesAbsentFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "401", RoomType: models.RoomTypeDouble, Description: "original", Capacity: 2}
	require.NoError(t, svc.Create(&room, []string{"wifi"}, nil, nil, nil))

	updated, err := svc.Update(room.ID, map[string]any{"description": "renovated"}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "renovated", updated.Description)
	assert.Equal(t, 2, updated.Capacity)
	// amenities untouched because absent from the payload
	assert.Equal(t, []string{"wifi"}, svc.Serialize(&updated, nil).Amenities)
}

func TestUpdateNormalizesPresentListField(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "402", RoomType: models.RoomTypeSingle}
	require.NoError(t, svc.Create(&room, []string{"wifi"}, nil, nil, nil))

	updated, err := svc.Update(room.ID, map[string]any{"amenities": `["wifi","minibar"]`}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"wifi", "minibar"}, svc.Serialize(&updated, nil).Amenities)
}

func TestUpdateDropsUnknownColumns(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "403", RoomType: models.RoomTypeDouble, Description: "original"}
	require.NoError(t, svc.Create(&room, nil, nil, nil, nil))

	// typos and read-only keys are dropped, the rest still applies
	updated, err := svc.Update(room.ID, map[string]any{
		"not_a_column": "x",
		"room_detail":  "y",
		"id":           999,
		"description":  "renovated",
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "renovated", updated.Description)
	assert.Equal(t, room.ID, updated.ID)
}

func TestCreateStorageFailureKeepsRoomWithoutImageRows(t *testing.T) {
	chTempDir(t)
	db := newTestDB(t)
	svc := NewRoomService(db)

	// a plain file where the uploads directory should be makes every
	// file copy fail
	require.NoError(t, os.WriteFile("uploads", []byte("not a directory"), 0644))

	room := models.Room{Number: "502", RoomType: models.RoomTypeSuite}
	cover := fileHeader(t, "cover_image", "cover.jpg", "fake-cover")
	fh := fileHeader(t, "gallery_images", "one.jpg", "fake-jpeg")

	require.NoError(t, svc.Create(&room, nil, nil, cover, []*multipart.FileHeader{fh}))

	loaded, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded.CoverImage)
	assert.Empty(t, loaded.Images)

	var imageCount int64
	require.NoError(t, db.Model(&models.RoomImage{}).Count(&imageCount).Error)
	assert.Zero(t, imageCount)
}

func TestUpdateAppendsGalleryWithoutReplacing(t *testing.T) {
	chTempDir(t)
	db := newTestDB(t)
	svc := NewRoomService(db)

	room := models.Room{Number: "501", RoomType: models.RoomTypeSuite}
	require.NoError(t, svc.Create(&room, nil, nil, nil, nil))
	require.NoError(t, db.Create(&models.RoomImage{RoomID: room.ID, Image: "rooms/gallery/existing.jpg"}).Error)

	fh := fileHeader(t, "gallery_images", "extra.jpg", "fake-extra")
	updated, err := svc.Update(room.ID, map[string]any{}, nil, []*multipart.FileHeader{fh})
	require.NoError(t, err)
	assert.Len(t, updated.Images, 2)
}
