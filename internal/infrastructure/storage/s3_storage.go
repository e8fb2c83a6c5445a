// Package storage implementa ports.DocumentStorage sobre S3 o disco local.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"

	"github.com/jhoicas/azenterprise-api/internal/application/ports"
)

var _ ports.DocumentStorage = (*S3Storage)(nil)

// S3Options parámetros del bucket.
type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string // opcional, para servicios compatibles con S3
	PublicBaseURL string // opcional; por defecto https://{bucket}.s3.amazonaws.com
}

// S3Storage sube archivos con el uploader multipart de aws-sdk-go.
// Las credenciales salen de la cadena por defecto del SDK (env, perfil, rol).
type S3Storage struct {
	uploader s3manageriface.UploaderAPI
	client   s3iface.S3API
	bucket   string
	baseURL  string
}

// NewS3Storage abre la sesión AWS y construye el adaptador.
func NewS3Storage(opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket vacío")
	}
	awsCfg := &aws.Config{Region: aws.String(opts.Region)}
	if opts.Endpoint != "" {
		awsCfg.Endpoint = aws.String(opts.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: sesión AWS: %w", err)
	}
	return NewS3StorageWithUploader(s3manager.NewUploader(sess), opts).WithClient(s3.New(sess)), nil
}

// NewS3StorageWithUploader permite inyectar el uploader (tests).
func NewS3StorageWithUploader(u s3manageriface.UploaderAPI, opts S3Options) *S3Storage {
	base := strings.TrimSuffix(opts.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.amazonaws.com", opts.Bucket)
	}
	return &S3Storage{uploader: u, bucket: opts.Bucket, baseURL: base}
}

// WithClient fija el cliente S3 usado para borrar objetos.
func (s *S3Storage) WithClient(c s3iface.S3API) *S3Storage {
	s.client = c
	return s
}

// Delete borra el objeto key. S3 no falla si el objeto no existe.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return fmt.Errorf("storage: key vacía")
	}
	if s.client == nil {
		return fmt.Errorf("storage: cliente S3 no configurado")
	}
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("storage: borrar %s: %w", key, err)
	}
	return nil
}

// Put sube body bajo key y devuelve la URL pública del objeto.
func (s *S3Storage) Put(ctx context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if key == "" {
		return "", fmt.Errorf("storage: key vacía")
	}
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	return s.baseURL + "/" + key, nil
}
