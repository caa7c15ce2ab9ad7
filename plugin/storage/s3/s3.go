package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	s3config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/esummer9/mykeyword/common"
)

type Config struct {
	AccessKey string
	SecretKey string
	Bucket    string
	EndPoint  string
	Region    string
	// Prefix is prepended to every object key.
	Prefix string
}

type Client struct {
	Client *awss3.Client
	Config *Config
}

func NewClient(ctx context.Context, config *Config) (*Client, error) {
	opts := []func(*s3config.LoadOptions) error{
		s3config.WithRegion(config.Region),
	}
	if config.EndPoint != "" {
		resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...any) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:               config.EndPoint,
				SigningRegion:     config.Region,
				HostnameImmutable: true,
			}, nil
		})
		opts = append(opts, s3config.WithEndpointResolverWithOptions(resolver))
	}
	if config.AccessKey != "" {
		opts = append(opts, s3config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.AccessKey, config.SecretKey, "")))
	}

	awsConfig, err := s3config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := awss3.NewFromConfig(awsConfig, func(o *awss3.Options) {
		o.UsePathStyle = config.EndPoint != ""
	})

	return &Client{
		Client: client,
		Config: config,
	}, nil
}

// ExportKey returns a unique object key for an export taken at t.
func (client *Client) ExportKey(t time.Time) string {
	filename := fmt.Sprintf("mykeyword-%s-%s.json", t.Format("20060102-150405"), common.GenUUID()[:8])
	return path.Join(client.Config.Prefix, "exports", filename)
}

// UploadFile uploads src under key and returns the object location.
func (client *Client) UploadFile(ctx context.Context, key string, fileType string, src io.Reader) (string, error) {
	uploader := manager.NewUploader(client.Client)
	uploadOutput, err := uploader.Upload(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(client.Config.Bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(fileType),
	})
	if err != nil {
		return "", err
	}

	link := uploadOutput.Location
	if link == "" {
		return "", fmt.Errorf("failed to get file link")
	}
	return link, nil
}
