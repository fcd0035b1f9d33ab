// Package storage wraps the blob-storage collaborator. The store keeps only
// opaque handles; retrieval goes through time-limited signed URLs issued
// here.
package storage

import (
	"fmt"

	"github.com/google/uuid"
	storage "github.com/supabase-community/storage-go"
)

const signedURLExpirySeconds = 3600

type Client struct {
	client *storage.Client
	bucket string
}

func NewClient(supabaseURL, serviceKey, bucket string) (*Client, error) {
	baseURL := supabaseURL
	if len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	client := storage.NewClient(baseURL+"/storage/v1", serviceKey, nil)

	return &Client{
		client: client,
		bucket: bucket,
	}, nil
}

// IssueUploadURL returns a signed upload target and the storage handle the
// caller registers afterwards. Handle layout: projects/{project_id}/{uuid}_{filename}.
func (c *Client) IssueUploadURL(projectID uuid.UUID, filename string) (uploadURL, handle string, err error) {
	handle = fmt.Sprintf("projects/%s/%s_%s", projectID.String(), uuid.New().String(), filename)

	resp, err := c.client.CreateSignedUploadUrl(c.bucket, handle)
	if err != nil {
		return "", "", fmt.Errorf("failed to create signed upload url: %w", err)
	}

	return resp.Url, handle, nil
}

// ResolveURL exchanges a storage handle for a time-limited retrieval URL.
func (c *Client) ResolveURL(handle string) (string, error) {
	resp, err := c.client.CreateSignedUrl(c.bucket, handle, signedURLExpirySeconds)
	if err != nil {
		return "", fmt.Errorf("failed to create signed url: %w", err)
	}
	return resp.SignedURL, nil
}

func (c *Client) DeleteBlob(handle string) error {
	_, err := c.client.RemoveFile(c.bucket, []string{handle})
	if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
