package scaninbox

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

// DriveClient reads the shared Drive folder where staff drop invoice scans
// from their phones.
type DriveClient struct {
	srv *drive.Service
}

func NewDriveClient(ctx context.Context, credentialsJSON string) (*DriveClient, error) {
	jwtConfig, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		drive.DriveReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("scan inbox: parse drive credentials: %w", err)
	}

	client := jwtConfig.Client(ctx)
	srv, err := drive.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("scan inbox: build drive service: %w", err)
	}

	return &DriveClient{srv: srv}, nil
}

// InboxFile is one file sitting in the inbox folder.
type InboxFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime,omitempty"`
	Size         int64  `json:"size,string,omitempty"`
}

func (c *DriveClient) ListFiles(ctx context.Context, folderID string) ([]InboxFile, error) {
	if folderID == "" {
		folderID = "root"
	}

	result, err := c.srv.Files.List().
		Context(ctx).
		Q(fmt.Sprintf("'%s' in parents and trashed=false", folderID)).
		Fields("files(id, name, mimeType, modifiedTime, size)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("scan inbox: list files: %w", err)
	}

	files := make([]InboxFile, 0, len(result.Files))
	for _, f := range result.Files {
		files = append(files, InboxFile{
			ID:           f.Id,
			Name:         f.Name,
			MimeType:     f.MimeType,
			ModifiedTime: f.ModifiedTime,
			Size:         f.Size,
		})
	}

	return files, nil
}

// DownloadFile fetches one file's content into memory. Scans are phone photos
// or short text exports, small enough to buffer.
func (c *DriveClient) DownloadFile(ctx context.Context, fileID string) ([]byte, error) {
	resp, err := c.srv.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("scan inbox: download file: %w", err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("scan inbox: read file body: %w", err)
	}
	return buf.Bytes(), nil
}

// FindFolderByPath resolves a "parent/child" path to a folder id.
func (c *DriveClient) FindFolderByPath(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "root", nil
	}

	currentID := "root"
	for _, folder := range strings.Split(path, "/") {
		if folder == "" {
			continue
		}

		result, err := c.srv.Files.List().
			Context(ctx).
			Q(fmt.Sprintf("'%s' in parents and name='%s' and mimeType='application/vnd.google-apps.folder' and trashed=false",
				currentID, folder)).
			Fields("files(id, name)").
			Do()
		if err != nil {
			return "", fmt.Errorf("scan inbox: find folder %s: %w", folder, err)
		}
		if len(result.Files) == 0 {
			return "", fmt.Errorf("scan inbox: folder not found: %s", folder)
		}

		currentID = result.Files[0].Id
	}

	return currentID, nil
}
