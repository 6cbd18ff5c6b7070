package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"hotelsite-backend/config"
	"hotelsite-backend/models"
	"hotelsite-backend/services"
	"hotelsite-backend/utils"

	"github.com/gin-gonic/gin"
)

// galleryImageResponse resolves the stored path into a URL for display.
type galleryImageResponse struct {
	ID         uint      `json:"id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	IsFeatured bool      `json:"is_featured"`
	CreatedAt  time.Time `json:"created_at"`
}

func serializeGalleryImage(img *models.GalleryImage, c *gin.Context) galleryImageResponse {
	return galleryImageResponse{
		ID:         img.ID,
		Title:      img.Title,
		Image:      services.AbsoluteURL(c.Request, img.Image),
		IsFeatured: img.IsFeatured,
		CreatedAt:  img.CreatedAt,
	}
}

func listGalleryImages(c *gin.Context) ([]galleryImageResponse, error) {
	var images []models.GalleryImage
	err := config.DB.Order("is_featured DESC, created_at DESC, id ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}
	out := make([]galleryImageResponse, 0, len(images))
	for i := range images {
		out = append(out, serializeGalleryImage(&images[i], c))
	}
	return out, nil
}

// ----------------------------------------------------
// 1. Public listing (GET /api/gallery) — featured first, then newest
// ----------------------------------------------------

func GetGalleryImages(c *gin.Context) {
	out, err := listGalleryImages(c)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list gallery")
		return
	}
	c.JSON(http.StatusOK, out)
}

// ----------------------------------------------------
// 2. Admin CRUD (/api/admin/gallery)
// ----------------------------------------------------

func GetGalleryImagesAdmin(c *gin.Context) {
	GetGalleryImages(c)
}

// CreateGalleryImage accepts a multipart form: title, is_featured and the
// image file. Stored under gallery/.
func CreateGalleryImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		utils.JSONFieldErrors(c, http.StatusBadRequest, map[string]string{"image": "An image file is required."})
		return
	}

	isFeatured, _ := strconv.ParseBool(c.PostForm("is_featured"))
	img := models.GalleryImage{
		Title:      c.PostForm("title"),
		IsFeatured: isFeatured,
	}

	path, err := services.SaveUploadedFile(file, services.GalleryDir)
	if err != nil {
		log.Printf("❌ Failed to store gallery image: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "failed to store image")
		return
	}
	img.Image = path

	if err := config.DB.Create(&img).Error; err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create gallery image")
		return
	}
	c.JSON(http.StatusCreated, serializeGalleryImage(&img, c))
}

func UpdateGalleryImage(c *gin.Context) {
	id := c.Param("id")

	var img models.GalleryImage
	if err := config.DB.First(&img, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "gallery image not found")
		return
	}

	updates := map[string]any{}
	if title, ok := c.GetPostForm("title"); ok {
		updates["title"] = title
	}
	if featured, ok := c.GetPostForm("is_featured"); ok {
		if b, err := strconv.ParseBool(featured); err == nil {
			updates["is_featured"] = b
		}
	}
	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := services.SaveUploadedFile(file, services.GalleryDir)
		if err != nil {
			log.Printf("warning: failed to store gallery image %s: %v", id, err)
		} else {
			updates["image"] = path
		}
	}

	if len(updates) > 0 {
		if err := config.DB.Model(&img).Updates(updates).Error; err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "update failed")
			return
		}
	}
	c.JSON(http.StatusOK, serializeGalleryImage(&img, c))
}

func DeleteGalleryImage(c *gin.Context) {
	id := c.Param("id")
	result := config.DB.Where("id = ?", id).Delete(&models.GalleryImage{})
	if result.Error != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete gallery image")
		return
	}
	if result.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "gallery image not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Gallery image deleted successfully"})
}
