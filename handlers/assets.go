package handlers

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/dare4net/ast4-lesson-builder/db"
	"github.com/dare4net/ast4-lesson-builder/models"
	"github.com/dare4net/ast4-lesson-builder/registry"
	"github.com/dare4net/ast4-lesson-builder/utils"
	"github.com/gen2brain/go-fitz"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func generateFileName() string {
	return uuid.New().String()
}

// UploadAsset stores an uploaded image under assets/ in S3 and returns the
// public URL for use in image component props.
func UploadAsset(c *gin.Context) {
	log.Println("*** /upload-asset ***")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are supported"})
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	fileName := generateFileName() + ext

	url, err := uploadToS3(file, fileName, contentType)
	if err != nil {
		log.Println("Error uploading asset to S3", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading asset"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "url": url})
}

func uploadToS3(body io.ReadSeeker, fileName string, contentType string) (string, error) {
	awsPath := fmt.Sprintf("assets/%s", fileName)

	s3session := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(utils.AWS_REGION),
	}))
	uploader := s3.New(s3session)
	_, err := uploader.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(utils.AWS_BUCKET_NAME),
		Key:         aws.String(awsPath),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", utils.AWS_BUCKET_NAME, awsPath)
	log.Println("Uploaded file URL:", url)
	return url, nil
}

// deleteAssetByURL deletes an uploaded file from S3 given its public URL.
// Foreign URLs (not in our bucket) are left alone.
func deleteAssetByURL(url string) bool {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", utils.AWS_BUCKET_NAME)
	if !strings.HasPrefix(url, prefix) {
		return false
	}
	key := strings.TrimPrefix(url, prefix)

	log.Println("Deleting file from S3:", key)
	s3session := session.Must(session.NewSession(&aws.Config{
		Region: aws.String(utils.AWS_REGION),
	}))
	svc := s3.New(s3session)
	_, err := svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(utils.AWS_BUCKET_NAME),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Println("Error deleting file from S3:", err)
		return false
	}

	log.Println("File deletion initiated for key:", key)
	return true
}

// ImportPDFAsLesson downloads a PDF, renders each page to a PNG, uploads the
// images to S3, and stores a new lesson with one image slide per page.
func ImportPDFAsLesson(c *gin.Context) {
	log.Println("*** /import-pdf ***")

	var req models.PDFImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	response, err := http.Get(req.PDFURL)
	if err != nil {
		log.Println("Error downloading PDF", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error downloading PDF"})
		return
	}
	defer response.Body.Close()

	pdfBytes, err := io.ReadAll(response.Body)
	if err != nil {
		log.Println("Error reading PDF response", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error reading PDF response"})
		return
	}

	tmpDir, err := os.MkdirTemp(".", "fitz")
	if err != nil {
		log.Println("Error creating temp directory", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating temp directory"})
		return
	}
	defer os.RemoveAll(tmpDir)

	tempPDFPath := filepath.Join(tmpDir, "document.pdf")
	if err := os.WriteFile(tempPDFPath, pdfBytes, 0644); err != nil {
		log.Println("Error writing PDF to file", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error writing PDF to file"})
		return
	}

	images, err := pdfToImages(tempPDFPath)
	if err != nil {
		log.Println("Error converting PDF to images", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error converting PDF to images"})
		return
	}

	log.Println("Number of pages:", len(images))

	title := req.Title
	if title == "" {
		title = "Imported lesson"
	}

	lesson := models.Lesson{
		ID:        uuid.New().String(),
		Title:     title,
		Author:    req.Author,
		Slides:    []models.Slide{},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for i, img := range images {
		fileName := generateFileName() + ".png"
		imagePath := filepath.Join(tmpDir, fileName)
		if err := saveImageToFile(img, imagePath); err != nil {
			log.Println("Error saving image to file", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error saving image to file"})
			return
		}

		imageFile, err := os.Open(imagePath)
		if err != nil {
			log.Println("Error opening image file", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error opening image file"})
			return
		}
		url, err := uploadToS3(imageFile, fileName, "image/png")
		imageFile.Close()
		if err != nil {
			log.Println("Error uploading image to S3", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error uploading image to S3"})
			return
		}

		props := registry.DefaultProps("image")
		props["url"] = url
		props["alt"] = fmt.Sprintf("Page %d", i+1)

		lesson.Slides = append(lesson.Slides, models.Slide{
			ID:    uuid.New().String(),
			Title: fmt.Sprintf("Page %d", i+1),
			Components: []models.Component{
				{ID: uuid.New().String(), Type: "image", Props: props},
			},
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := db.DB.Collection(CollectionNameLessons).InsertOne(ctx, lesson)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Println("Imported PDF as lesson:", result.InsertedID)

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": lesson})
}

func pdfToImages(pdfPath string) ([]image.Image, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	var images []image.Image
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}

	return images, nil
}

func saveImageToFile(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
