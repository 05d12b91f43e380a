package productcontroller

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Abhraroy/thejwel-sub001/pkg/storage"
)

// saveImage writes an uploaded image under uploadsDir/<subdir> and returns
// the public path served by the /uploads static route. When remote object
// storage is configured the image is mirrored there too; a mirror failure
// is logged but the local copy still wins.
func saveImage(c *gin.Context, file *multipart.FileHeader, uploadsDir, subdir string, store *storage.Client) (string, error) {
	saveDir := filepath.Join(uploadsDir, subdir)
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %v", err)
	}

	filename := storage.SafeFilename(file.Filename)
	savePath := filepath.Join(saveDir, filename)

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		return "", fmt.Errorf("failed to save image: %v", err)
	}

	if store.Configured() {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			f, err := os.Open(savePath)
			if err != nil {
				log.Printf("⚠️ Failed to open %s for storage mirror: %v", savePath, err)
				return
			}
			defer f.Close()

			key := subdir + "/" + filename
			if _, err := store.Put(ctx, key, file.Header.Get("Content-Type"), f); err != nil {
				log.Printf("⚠️ Failed to mirror %s to object storage: %v", key, err)
			}
		}()
	}

	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}
