package api

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

// ImagesRoute is the URL prefix recipe photos are served under.
const ImagesRoute = "/images"

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
}

// UploadPhoto stores a resized photo for a recipe and records its URL path
// on the recipe document.
func (h *Handler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("get form err: %s", err.Error())})
		return
	}

	extension := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[extension] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only JPEG, JPG, and PNG images are allowed."})
		return
	}
	if h.Images.MaxSize > 0 && file.Size > h.Images.MaxSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("image exceeds %d bytes", h.Images.MaxSize)})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("open file err: %s", err.Error())})
		return
	}
	defer src.Close()

	imageData, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("read image err: %s", err.Error())})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	recipeID := c.Param("id")
	if _, err := h.Recipes.Get(ctx, recipeID); err != nil {
		h.storeError(c, err)
		return
	}

	fileName, err := saveImage(imageData, h.Images.Dir, h.Images.Width, extension)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errUndecodableImage) {
			status = http.StatusBadRequest
		} else {
			h.logger.Error("recipe photo not saved", zap.String("recipe_id", recipeID), zap.Error(err))
		}
		c.JSON(status, gin.H{"error": fmt.Sprintf("failed to save image: %s", err.Error())})
		return
	}

	imagePath := path.Join(ImagesRoute, fileName)
	if err := h.Recipes.SetImagePath(ctx, recipeID, imagePath); err != nil {
		h.storeError(c, err)
		return
	}

	h.logger.Info("recipe photo stored", zap.String("recipe_id", recipeID), zap.String("image_path", imagePath))
	c.JSON(http.StatusOK, gin.H{"imagePath": imagePath})
}

// errUndecodableImage marks uploads that are not a readable image.
var errUndecodableImage = errors.New("failed to decode image")

// saveImage scales the image to width, keeping its aspect ratio, and writes
// it into dir under its content hash. It returns the file name. On failure no
// file is left behind.
func saveImage(imageData []byte, dir string, width uint, extension string) (fileName string, err error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return "", fmt.Errorf("%w: %v", errUndecodableImage, err)
	}

	img = resize.Resize(width, 0, img, resize.Lanczos3)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create images directory: %w", err)
	}

	hash := sha256.Sum256(imageData)
	fileName = hex.EncodeToString(hash[:]) + extension
	target := filepath.Join(dir, fileName)
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to write image file: %w", closeErr)
		}
		if err != nil {
			os.Remove(target)
			fileName = ""
		}
	}()

	switch extension {
	case ".jpeg", ".jpg":
		err = jpeg.Encode(out, img, nil)
	case ".png":
		err = png.Encode(out, img)
	default:
		err = fmt.Errorf("unsupported image format: %s", extension)
	}
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	return fileName, nil
}
