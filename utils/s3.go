package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Uploader stores progress photos. Constructed once at startup and passed
// to the services that need it; nil means photo upload is disabled.
type S3Uploader struct {
	client *s3.Client
	bucket string
	cdnURL string
}

func NewS3Uploader(ctx context.Context, region, bucket, cdnURL string) (*S3Uploader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		cdnURL: cdnURL,
	}, nil
}

// UploadBase64Image accepts a "data:<mime>;base64,<data>" URL, stores the
// decoded bytes under keyPrefix and returns the public URL.
func (u *S3Uploader) UploadBase64Image(ctx context.Context, base64Data, keyPrefix string) (string, error) {
	parts := strings.Split(base64Data, ",")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid base64 image")
	}
	meta := parts[0]
	data := parts[1]

	mediaType := strings.SplitN(meta, ":", 2)
	if len(mediaType) != 2 {
		return "", fmt.Errorf("invalid base64 image header")
	}
	contentType := strings.SplitN(mediaType[1], ";", 2)[0]

	var ext string
	switch contentType {
	case "image/jpeg", "image/jpg":
		ext = ".jpg"
	default:
		if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
			ext = exts[0]
		} else if sub := strings.SplitN(contentType, "/", 2); len(sub) == 2 {
			ext = "." + sub[1]
		}
	}

	imageData, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	key := fmt.Sprintf("%s/%s%s", keyPrefix, uuid.NewString(), ext)

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", u.cdnURL, key), nil
}
