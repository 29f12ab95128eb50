package model

// AssetResponse is the result of a single asset query.
type AssetResponse interface {
	Primitive[AssetResponse]
	// Asset returns the attached asset. The response does not own it.
	Asset() Asset
}

type assetResponse struct {
	single[Asset]
}

// NewAssetResponse wraps an asset produced by the ledger.
func NewAssetResponse(asset Asset) AssetResponse {
	return &assetResponse{single[Asset]{kind: KindAssetResponse, entity: asset}}
}

func (r *assetResponse) Asset() Asset { return r.entity }

func (r *assetResponse) Equal(rhs AssetResponse) bool {
	return sameEntity(AssetResponse.Asset, AssetResponse(r), rhs)
}

func (r *assetResponse) Matches(other Object) bool {
	return Match[AssetResponse](r, other)
}
