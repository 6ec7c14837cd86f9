package catalog

import "context"

// Source supplies raw catalog records. Every method is called concurrently
// with the others during Load and must be safe for that.
type Source interface {
	FetchProducts(ctx context.Context) ([]RawProduct, error)
	FetchCategories(ctx context.Context) ([]Category, error)
	FetchBrands(ctx context.Context) ([]Brand, error)
	FetchGeneralDefinitions(ctx context.Context) ([]CharacteristicDef, error)
	FetchGeneralOptions(ctx context.Context) ([]CharacteristicOption, error)
	FetchExtraDefinitions(ctx context.Context) ([]CharacteristicDef, error)
	FetchExtraOptions(ctx context.Context) ([]CharacteristicOption, error)
}
