package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"product-feed/internal/app"
	"product-feed/internal/database"
	"product-feed/internal/fixture"
	"product-feed/internal/repository"
)

type SeedResult struct {
	Products repository.UpsertResult `json:"products"`
	Media    repository.UpsertResult `json:"media"`
}

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML fixture into the MongoDB catalog and media collections",
		Long: `Upserts every product and media record of --fixture into MONGO_URI / MONGO_DB so the
mongo catalog and media sources serve the same feed as the fixture.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(rootOpts, cmd)
		},
	}
	return cmd
}

func runSeed(opts *RootOptions, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	if opts.Fixture == "" {
		err := NewExitError(ExitCommandError, "--fixture is required for seed")
		out.Error(err)
		return err
	}
	cfg := opts.loadConfig()
	if cfg.MongoURI == "" {
		err := NewExitError(ExitCommandError, "MONGO_URI is required for seed")
		out.Error(err)
		return err
	}

	ds, err := fixture.Load(opts.Fixture)
	if err != nil {
		wrapped := WrapExitError(ExitCommandError, "could not load fixture", err)
		out.Error(wrapped)
		return wrapped
	}

	client, err := database.Connect(cmd.Context(), cfg.MongoURI)
	if err != nil {
		wrapped := WrapExitError(ExitFailure, "could not connect to mongodb", err)
		out.Error(wrapped)
		return wrapped
	}
	defer database.Disconnect(client)

	db := client.Database(cfg.MongoDB)
	repo := repository.NewCatalogRepository(db.Collection(app.ProductsCollection), db.Collection(app.MediaCollection))

	var result SeedResult
	if result.Products, err = repo.UpsertProducts(cmd.Context(), ds.Products); err != nil {
		wrapped := WrapExitError(ExitFailure, "seed products", err)
		out.Error(wrapped)
		return wrapped
	}
	if result.Media, err = repo.UpsertMedia(cmd.Context(), ds.Media); err != nil {
		wrapped := WrapExitError(ExitFailure, "seed media", err)
		out.Error(wrapped)
		return wrapped
	}

	return out.Result(result, func(w io.Writer) {
		fmt.Fprintf(w, "products: %d inserted, %d updated\n", result.Products.Inserted, result.Products.Updated)
		fmt.Fprintf(w, "media: %d inserted, %d updated\n", result.Media.Inserted, result.Media.Updated)
	})
}
