package s3

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/evexport/evexport/internal/progress"
)

// SyncPrefix downloads every object under the absolute s3:// prefix into
// destDir, mirroring the key structure below the prefix. Directories are
// created as needed. Objects are fetched one at a time; the first failure
// stops the sync and already-downloaded files stay on disk.
//
// Returns the number of objects downloaded.
func (c *Client) SyncPrefix(ctx context.Context, uri, destDir string, reporter progress.Reporter) (int, error) {
	bucket, keyPrefix, err := SplitURI(uri)
	if err != nil {
		return 0, err
	}

	objects, err := c.ListPrefix(ctx, uri)
	if err != nil {
		return 0, err
	}

	downloaded := 0
	for _, obj := range objects {
		// Directory marker objects have nothing to write.
		if strings.HasSuffix(obj.Key, "/") {
			continue
		}

		rel := strings.TrimPrefix(obj.Key, keyPrefix)
		local := filepath.Join(destDir, filepath.FromSlash(rel))

		if err := c.downloadObject(ctx, bucket, obj, local, reporter); err != nil {
			return downloaded, err
		}
		downloaded++
	}

	return downloaded, nil
}

// downloadObject streams one object to a local file.
func (c *Client) downloadObject(ctx context.Context, bucket string, obj Object, local string, reporter progress.Reporter) error {
	if err := os.MkdirAll(filepath.Dir(local), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", local, err)
	}

	resp, err := c.client().GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return fmt.Errorf("failed to get s3://%s/%s: %w", bucket, obj.Key, err)
	}
	defer resp.Body.Close()

	file, err := os.Create(local)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", local, err)
	}
	defer file.Close()

	reporter.Start(obj.Size, filepath.Base(local))
	defer reporter.Finish()

	if _, err := io.Copy(file, progress.NewReader(resp.Body, reporter)); err != nil {
		return fmt.Errorf("failed to write %s: %w", local, err)
	}
	return nil
}
