package s3

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/evexport/evexport/internal/constants"
)

// ListPrefix lists every object under the absolute s3:// prefix, in key
// order, following pagination to the end.
func (c *Client) ListPrefix(ctx context.Context, uri string) ([]Object, error) {
	bucket, keyPrefix, err := SplitURI(uri)
	if err != nil {
		return nil, err
	}

	paginator := s3.NewListObjectsV2Paginator(c.client(), &s3.ListObjectsV2Input{
		Bucket:  aws.String(bucket),
		Prefix:  aws.String(keyPrefix),
		MaxKeys: aws.Int32(constants.ListPageSize),
	})

	var objects []Object
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", uri, err)
		}
		for _, obj := range page.Contents {
			objects = append(objects, Object{
				Key:          aws.ToString(obj.Key),
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}

	return objects, nil
}
