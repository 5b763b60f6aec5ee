package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"moodlog/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

type s3ClientOptions struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ForcePathStyle  bool
}

type remoteS3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func (s *remoteS3Store) Save(ctx context.Context, data []byte, opts SaveOptions) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	key := buildObjectKey(opts.Kind, opts.BaseName, opts.Extension)
	if s.prefix != "" {
		key = joinPrefix(s.prefix, key)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	}

	if ct := detectContentType(opts.Extension); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return key, nil
}

var _ Store = (*remoteS3Store)(nil)

// IsAccessDenied reports a credentials/policy failure so callers can log it
// distinctly from transient errors.
func IsAccessDenied(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := strings.ToLower(apiErr.ErrorCode())
		return code == "accessdenied" || code == "invalidaccesskeyid" || code == "signaturedoesnotmatch"
	}
	return false
}

func NewS3Store(cfg config.Config) (Store, error) {
	bucket := strings.TrimSpace(cfg.ArchiveS3Bucket)
	if bucket == "" {
		return nil, errors.New("archive: missing S3 bucket")
	}
	region := strings.TrimSpace(cfg.ArchiveS3Region)
	if region == "" {
		return nil, errors.New("archive: missing S3 region")
	}
	accessKey := strings.TrimSpace(cfg.ArchiveS3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.ArchiveS3SecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing S3 credentials")
	}

	client, err := newS3Client(s3ClientOptions{
		Region:          region,
		Endpoint:        strings.TrimSpace(cfg.ArchiveS3Endpoint),
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		SessionToken:    strings.TrimSpace(cfg.ArchiveS3SessionToken),
		ForcePathStyle:  cfg.ArchiveS3ForcePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: create S3 client: %w", err)
	}

	return &remoteS3Store{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.ArchiveS3Prefix),
	}, nil
}

func newS3Client(opts s3ClientOptions) (*s3.Client, error) {
	region := strings.TrimSpace(opts.Region)
	if region == "" {
		return nil, errors.New("archive: missing S3 region")
	}
	accessKey := strings.TrimSpace(opts.AccessKeyID)
	secretKey := strings.TrimSpace(opts.SecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing S3 credentials")
	}

	credentialsProvider := aws.NewCredentialsCache(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, strings.TrimSpace(opts.SessionToken)),
	)

	awsCfg := aws.Config{
		Region:      region,
		Credentials: credentialsProvider,
	}

	endpoint := strings.TrimSpace(opts.Endpoint)
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(func(service, _ string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           endpoint,
					SigningRegion: region,
				}, nil
			}
			return aws.Endpoint{}, fmt.Errorf("archive: no endpoint for service %s", service)
		})
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = opts.ForcePathStyle
	})

	return client, nil
}

// NewR2Store configures the S3-compatible client against a Cloudflare R2
// account endpoint.
func NewR2Store(cfg config.Config) (Store, error) {
	bucket := strings.TrimSpace(cfg.ArchiveR2Bucket)
	if bucket == "" {
		return nil, errors.New("archive: missing R2 bucket")
	}
	accessKey := strings.TrimSpace(cfg.ArchiveR2AccessKeyID)
	secretKey := strings.TrimSpace(cfg.ArchiveR2SecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing R2 credentials")
	}

	endpoint := strings.TrimSpace(cfg.ArchiveR2Endpoint)
	accountID := strings.TrimSpace(cfg.ArchiveR2AccountID)
	if endpoint == "" {
		if accountID == "" {
			return nil, errors.New("archive: missing R2 endpoint or account id")
		}
		endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
	}

	region := strings.TrimSpace(cfg.ArchiveR2Region)
	if region == "" {
		region = "auto"
	}

	client, err := newS3Client(s3ClientOptions{
		Region:          region,
		Endpoint:        endpoint,
		AccessKeyID:     accessKey,
		SecretAccessKey: secretKey,
		ForcePathStyle:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("archive: create R2 client: %w", err)
	}

	return &remoteS3Store{
		client: client,
		bucket: bucket,
		prefix: trimPrefix(cfg.ArchiveR2Prefix),
	}, nil
}
