package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"turkish_shop_backend/internal/database"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

// UploadFile stores an uploaded file in the configured bucket under the given
// folder and returns its public URL. Used for vouch profile pictures and
// product images; the object name is randomized so uploads never collide.
func UploadFile(ctx context.Context, folder string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO is not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	objectName := path.Join(folder, uuid.New().String()+path.Ext(file.Filename))

	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
