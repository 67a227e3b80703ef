// Package drive stores uploaded images as files in Google Drive. Each file
// is made readable by anyone with the link and referenced by its direct view
// URL, so image references resolve from any browser without a Google session.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	goption "google.golang.org/api/option"
)

type Store struct {
	svc      *gdrive.Service
	folderID string
}

// NewFromEnv creates a Drive client from service account credentials.
// Honors GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, and
// GOOGLE_APPLICATION_CREDENTIALS, in that order.
func NewFromEnv(ctx context.Context, folderID string) (*Store, error) {
	if folderID == "" {
		folderID = "root"
	}

	credentialsJSON, err := readCredentials()
	if err != nil {
		return nil, err
	}

	svc, err := gdrive.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gdrive.DriveFileScope))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}

	return &Store{svc: svc, folderID: folderID}, nil
}

func readCredentials() ([]byte, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case serviceAccountJSON != "":
		return []byte(serviceAccountJSON), nil
	case serviceAccountFile != "":
		data, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

func (s *Store) Put(ctx context.Context, filename string, data []byte, mimeType string) (string, error) {
	if s.svc == nil {
		return "", errors.New("drive service not initialized")
	}

	meta := &gdrive.File{
		Name:    filename,
		Parents: []string{s.folderID},
	}

	file, err := s.svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("upload %s to drive: %w", filename, err)
	}

	// Anyone with the link can read; the reference must resolve without a
	// Google session.
	_, err = s.svc.Permissions.Create(file.Id, &gdrive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("share drive file %s: %w", file.Id, err)
	}

	url := fmt.Sprintf("https://drive.google.com/uc?export=view&id=%s", file.Id)
	slog.InfoContext(ctx, "Image uploaded to Drive", "file_id", file.Id, "name", filename, "bytes", len(data))
	return url, nil
}
