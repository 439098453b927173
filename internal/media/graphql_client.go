package media

import (
	"context"
	"strings"

	"github.com/machinebox/graphql"
	"github.com/pkg/errors"

	"product-feed/internal/models"
)

const productAssetsQuery = `
query productAssets($ids: [String!]) {
    allProduct(where: { medusaId: { in: $ids } }) {
        _id
        medusaId
        title
        heroImage {
            asset {
                _id
            }
        }
        wearTestMedia {
            __typename
            ... on Image {
                _key
                alt
                asset {
                    _id
                }
            }
            ... on File {
                _key
                asset {
                    _id
                }
            }
        }
    }
}`

type gqlAsset struct {
	ID string `json:"_id"`
}

type gqlImage struct {
	Asset *gqlAsset `json:"asset"`
}

type gqlMedia struct {
	Typename string    `json:"__typename"`
	Key      string    `json:"_key"`
	Alt      string    `json:"alt"`
	Asset    *gqlAsset `json:"asset"`
}

type gqlProduct struct {
	ID            string     `json:"_id"`
	MedusaID      string     `json:"medusaId"`
	Title         string     `json:"title"`
	HeroImage     *gqlImage  `json:"heroImage"`
	WearTestMedia []gqlMedia `json:"wearTestMedia"`
}

type productAssetsResponse struct {
	AllProduct []gqlProduct `json:"allProduct"`
}

// GraphQLClient consulta el CMS por su API GraphQL
type GraphQLClient struct {
	client *graphql.Client
	token  string
}

func NewGraphQLClient(endpoint, token string) *GraphQLClient {
	return &GraphQLClient{
		client: graphql.NewClient(endpoint),
		token:  token,
	}
}

// QueryByExternalIDs trae los assets de todos los IDs en una sola consulta
func (c *GraphQLClient) QueryByExternalIDs(ctx context.Context, ids []string) ([]models.MediaRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	req := graphql.NewRequest(productAssetsQuery)
	req.Var("ids", ids)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	var resp productAssetsResponse
	if err := c.client.Run(ctx, req, &resp); err != nil {
		return nil, errors.Wrapf(err, "query media assets for %d products", len(ids))
	}

	records := make([]models.MediaRecord, 0, len(resp.AllProduct))
	for _, p := range resp.AllProduct {
		records = append(records, toRecord(p))
	}
	return records, nil
}

func toRecord(p gqlProduct) models.MediaRecord {
	record := models.MediaRecord{
		ExternalID: strings.TrimSpace(p.MedusaID),
		Title:      p.Title,
	}

	if p.HeroImage != nil && p.HeroImage.Asset != nil && p.HeroImage.Asset.ID != "" {
		record.Hero = &models.MediaRef{Type: models.MediaRefImage, AssetRef: p.HeroImage.Asset.ID}
	}

	for _, m := range p.WearTestMedia {
		ref := models.MediaRef{
			Type: models.MediaRefFile,
			Key:  m.Key,
			Alt:  m.Alt,
		}
		if strings.EqualFold(m.Typename, "image") {
			ref.Type = models.MediaRefImage
		}
		if m.Asset != nil {
			ref.AssetRef = m.Asset.ID
		}
		record.Supplemental = append(record.Supplemental, ref)
	}
	return record
}
