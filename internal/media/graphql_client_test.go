package media

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-feed/internal/models"
)

const assetsResponse = `{
  "data": {
    "allProduct": [
      {
        "_id": "doc-1",
        "medusaId": "prod_01",
        "title": "Gold Hoops",
        "heroImage": {"asset": {"_id": "image-aaa-800x1200-jpg"}},
        "wearTestMedia": [
          {"__typename": "Image", "_key": "k1", "alt": "on ear", "asset": {"_id": "image-bbb-800x1200-png"}},
          {"__typename": "File", "_key": "k2", "asset": {"_id": "file-ccc-mp4"}}
        ]
      },
      {
        "_id": "doc-2",
        "medusaId": "prod_02",
        "heroImage": null,
        "wearTestMedia": null
      }
    ]
  }
}`

func TestGraphQLClient_QueryByExternalIDs(t *testing.T) {
	var calls atomic.Int32
	var gotAuth string
	var gotIDs []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		gotAuth = r.Header.Get("Authorization")

		var body struct {
			Query     string `json:"query"`
			Variables struct {
				IDs []string `json:"ids"`
			} `json:"variables"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body.Query, "allProduct")
		gotIDs = body.Variables.IDs

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(assetsResponse))
	}))
	defer srv.Close()

	client := NewGraphQLClient(srv.URL, "secret")
	records, err := client.QueryByExternalIDs(context.Background(), []string{"prod_01", "prod_02", "prod_03"})
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load(), "lookup must be a single batched request")
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, []string{"prod_01", "prod_02", "prod_03"}, gotIDs)

	require.Len(t, records, 2)
	first := records[0]
	assert.Equal(t, "prod_01", first.ExternalID)
	require.NotNil(t, first.Hero)
	assert.Equal(t, "image-aaa-800x1200-jpg", first.Hero.AssetRef)
	require.Len(t, first.Supplemental, 2)
	assert.Equal(t, models.MediaRefImage, first.Supplemental[0].Type)
	assert.Equal(t, "on ear", first.Supplemental[0].Alt)
	assert.Equal(t, models.MediaRefFile, first.Supplemental[1].Type)

	assert.Nil(t, records[1].Hero)
	assert.Empty(t, records[1].Supplemental)
}

func TestGraphQLClient_EmptyIDsSkipsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer srv.Close()

	records, err := NewGraphQLClient(srv.URL, "").QueryByExternalIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestGraphQLClient_GraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": null, "errors": [{"message": "dataset not found"}]}`))
	}))
	defer srv.Close()

	_, err := NewGraphQLClient(srv.URL, "").QueryByExternalIDs(context.Background(), []string{"prod_01"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset not found")
}

func TestIndex(t *testing.T) {
	records := []models.MediaRecord{
		{ExternalID: "a", Title: "first"},
		{ExternalID: ""},
		{ExternalID: "a", Title: "duplicate"},
		{ExternalID: "b"},
	}

	idx := Index(records)
	require.Len(t, idx, 2)
	assert.Equal(t, "first", idx["a"].Title)
	assert.Same(t, &records[3], idx["b"])
}
