package infra

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/cockroachdb/errors"
)

// NewAwsConfig loads the aws configuration used by the textract client. Static credentials take
// precedence, otherwise the default chain (environment, shared files, instance role) is used.
func NewAwsConfig(ctx context.Context, conf TextractConfiguration) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(conf.Region),
	}
	if conf.AccessKeyId != "" && conf.SecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKeyId, conf.SecretAccessKey, "")))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, errors.Wrap(err, "failed to load aws config")
	}
	return cfg, nil
}
