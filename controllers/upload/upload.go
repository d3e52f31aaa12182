package uploadControllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadDir resolves the image upload directory from the environment.
func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./public/uploads"
}

// UploadImageHandler stores a single multipart image and returns its public
// path under /uploads.
func UploadImageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "code": "VALIDATION", "message": "No file uploaded"})
			return
		}

		dir := UploadDir()
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to create upload folder"})
			return
		}

		ext := filepath.Ext(file.Filename)
		base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
		base = strings.ReplaceAll(base, " ", "_")
		filename := fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext)

		if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "code": "INTERNAL", "message": "Failed to save file"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "File uploaded successfully",
			"filePath": "/uploads/" + filename,
		})
	}
}
