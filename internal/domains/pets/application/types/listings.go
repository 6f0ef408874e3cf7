package types

// CreateListingInput describes a new adoption listing. IdempotencyKey is
// optional and excluded from the request fingerprint.
type CreateListingInput struct {
	IdempotencyKey string   `json:"idempotencyKey,omitempty"`
	OwnerID        int64    `json:"ownerId" validate:"gt=0"`
	Name           string   `json:"name" validate:"max=100"`
	Gender         string   `json:"gender" validate:"oneof=Male Female Unknown"`
	Size           string   `json:"size" validate:"oneof=Small Medium Large"`
	AgeInMonths    int      `json:"ageInMonths" validate:"min=0"`
	Description    string   `json:"description" validate:"max=2000"`
	IsCastrated    bool     `json:"isCastrated"`
	IsVaccinated   bool     `json:"isVaccinated"`
	SpeciesID      int64    `json:"speciesId" validate:"gt=0"`
	BreedID        int64    `json:"breedId" validate:"gt=0"`
	TagIDs         []int64  `json:"tagIds" validate:"dive,gt=0"`
	ImageURLs      []string `json:"imageUrls" validate:"dive,url"`
}

// ListingIdentifier selects a single listing.
type ListingIdentifier struct {
	ID int64
}

// ListTagsInput optionally restricts tags to one category.
type ListTagsInput struct {
	Category string
}

// ImportListingsInput is a batch of listings created together.
type ImportListingsInput struct {
	BatchID  string
	Listings []CreateListingInput
}

// ImportFailure records why one listing of a batch was not created.
type ImportFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// ImportResult summarizes a finished batch.
type ImportResult struct {
	BatchID  string          `json:"batchId"`
	Imported []int64         `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}
