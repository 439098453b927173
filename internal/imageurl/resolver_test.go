package imageurl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-feed/internal/models"
)

func imageRef(assetRef string) models.MediaRef {
	return models.MediaRef{Type: models.MediaRefImage, AssetRef: assetRef}
}

func TestParseAssetRef(t *testing.T) {
	tests := []struct {
		ref     string
		want    Asset
		wantErr bool
	}{
		{"image-abc123-800x1200-jpg", Asset{Kind: models.MediaRefImage, ID: "abc123", Dimensions: "800x1200", Extension: "jpg"}, false},
		{" image-Zz9-1x1-webp ", Asset{Kind: models.MediaRefImage, ID: "Zz9", Dimensions: "1x1", Extension: "webp"}, false},
		{"file-def456-mp4", Asset{Kind: models.MediaRefFile, ID: "def456", Extension: "mp4"}, false},
		{"image-abc123-jpg", Asset{}, true},
		{"", Asset{}, true},
		{"asset-abc-1x1-png", Asset{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := ParseAssetRef(tt.ref)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCDNResolver(t *testing.T) {
	r := NewCDNResolver("proj1", "production")
	ctx := context.Background()

	u, err := r.Resolve(ctx, imageRef("image-abc123-800x1200-jpg"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/images/proj1/production/abc123-800x1200.jpg", u)

	u, err = r.Resolve(ctx, models.MediaRef{Type: models.MediaRefFile, AssetRef: "file-def456-mp4"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.sanity.io/files/proj1/production/def456.mp4", u)

	u, err = r.Resolve(ctx, imageRef("https://elsewhere.local/a.png"))
	require.NoError(t, err)
	assert.Equal(t, "https://elsewhere.local/a.png", u)

	_, err = r.Resolve(ctx, imageRef("garbage"))
	assert.Error(t, err)

	u, err = NewCDNResolver("p", "d").WithBase("https://cdn.test/").Resolve(ctx, imageRef("image-x-1x1-png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/images/p/d/x-1x1.png", u)
}

func TestS3Resolver(t *testing.T) {
	client := s3.New(s3.Options{
		Region:      "us-east-1",
		Credentials: credentials.NewStaticCredentialsProvider("AKIDEXAMPLE", "secret", ""),
	})
	r := NewS3ResolverFromClient(client, "feed-media")

	u, err := r.Resolve(context.Background(), imageRef("image-abc123-800x1200-jpg"))
	require.NoError(t, err)
	assert.Contains(t, u, "feed-media")
	assert.Contains(t, u, "images/abc123-800x1200.jpg")
	assert.Contains(t, u, "X-Amz-Signature=")

	u, err = r.Resolve(context.Background(), imageRef("http://already.local/x.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "http://already.local/x.jpg", u)

	_, err = r.Resolve(context.Background(), imageRef("nope"))
	assert.Error(t, err)
}

type countingResolver struct {
	calls int
	err   error
}

func (c *countingResolver) Resolve(_ context.Context, ref models.MediaRef) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return "https://cdn.test/" + strings.TrimPrefix(ref.AssetRef, "image-"), nil
}

func TestMemo(t *testing.T) {
	next := &countingResolver{}
	m := NewMemo(next, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		u, err := m.Resolve(ctx, imageRef("image-a-1x1-png"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/a-1x1-png", u)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, 1, m.Size())

	failing := &countingResolver{err: errors.New("boom")}
	fm := NewMemo(failing, 0)
	_, err := fm.Resolve(ctx, imageRef("image-b-1x1-png"))
	require.Error(t, err)
	_, _ = fm.Resolve(ctx, imageRef("image-b-1x1-png"))
	assert.Equal(t, 2, failing.calls, "errors are not memoized")
	assert.Equal(t, 0, fm.Size())
}
