package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// tempo máximo de um envio, independente da requisição que o originou
const archiveTimeout = 30 * time.Second

var ErrSemCredenciais = errors.New("storage: S3_ACCESS_KEY e S3_SECRET_KEY são obrigatórios")

type S3 struct {
	client  *s3.Client
	bucket  string
	now     func() time.Time
	timeout time.Duration
}

// NewS3 aceita endpoint próprio (MinIO); nesse caso usa path-style.
// Sem chaves estáticas não há como assinar o envio.
func NewS3(cfg S3Config) (*S3, error) {
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrSemCredenciais
	}

	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &S3{
		client:  s3.New(opts),
		bucket:  cfg.Bucket,
		now:     time.Now,
		timeout: archiveTimeout,
	}, nil
}

func (s *S3) Archive(ctx context.Context, name, contentType string, content []byte) (string, error) {
	key := ObjectKey(s.now(), name)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// a cópia termina mesmo se o navegador desistir da requisição,
	// mas nunca passa do próprio prazo
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(content),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(content))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}
	return key, nil
}
