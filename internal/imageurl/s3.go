package imageurl

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"product-feed/internal/models"
)

const defaultPresignExpiry = time.Hour

// S3Resolver genera URLs prefirmadas para assets espejados en un bucket
type S3Resolver struct {
	presign *s3.PresignClient
	bucket  string
	expires time.Duration
}

// NewS3Resolver carga la configuración por defecto de AWS para la región dada
func NewS3Resolver(ctx context.Context, region, bucket string) (*S3Resolver, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load AWS config: %w", err)
	}
	log.Println("[imageurl] S3 presign client initialized")
	return NewS3ResolverFromClient(s3.NewFromConfig(cfg), bucket), nil
}

func NewS3ResolverFromClient(client *s3.Client, bucket string) *S3Resolver {
	return &S3Resolver{
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expires: defaultPresignExpiry,
	}
}

// ObjectKey es la clave del objeto para un asset del CMS
func ObjectKey(asset Asset) string {
	folder := "images"
	if asset.Kind == models.MediaRefFile {
		folder = "files"
	}
	return folder + "/" + asset.Path()
}

func (r *S3Resolver) Resolve(ctx context.Context, ref models.MediaRef) (string, error) {
	if isAbsoluteURL(ref.AssetRef) {
		return ref.AssetRef, nil
	}

	asset, err := ParseAssetRef(ref.AssetRef)
	if err != nil {
		return "", err
	}

	req, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(ObjectKey(asset)),
	}, s3.WithPresignExpires(r.expires))
	if err != nil {
		return "", fmt.Errorf("failed to sign request: %w", err)
	}
	return req.URL, nil
}
