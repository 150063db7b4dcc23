package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"hackathon-portal/config"
)

type FileHandler struct{}

func NewFileHandler() *FileHandler {
	return &FileHandler{}
}

// GetFileFromGridFS streams a stored file (receipt uploads) back to the
// client with its original name and a sniffed content type.
func (h *FileHandler) GetFileFromGridFS(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid file ID"})
	}

	bucket, err := config.GetGridFSBucket()
	if err != nil {
		log.Printf("ERROR: failed to get GridFS bucket: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to access file storage"})
	}

	downloadStream, err := bucket.OpenDownloadStream(objectID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
	}
	defer downloadStream.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, downloadStream); err != nil {
		log.Printf("ERROR: failed to read file from GridFS: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to read file data"})
	}

	fileInfo := downloadStream.GetFile()

	c.Set("Content-Type", http.DetectContentType(buf.Bytes()))
	c.Set("Content-Disposition", "inline; filename=\""+fileInfo.Name+"\"")

	return c.Send(buf.Bytes())
}
