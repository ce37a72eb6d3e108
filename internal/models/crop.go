package models

// CropStatus values used by the marketplace API.
const (
	CropStatusAvailable = "available"
	CropStatusSoldOut   = "sold-out"
)

// CropOwner is the owner record embedded in every listing.
// Exactly one owner per listing, set at creation; the API never lets
// anyone else mutate or delete the listing.
type CropOwner struct {
	UID   string `json:"uid,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// Crop represents a sellable quantity of produce listed by a farmer.
type Crop struct {
	ID           string    `json:"id,omitempty"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"pricePerUnit"`
	Location     string    `json:"location"`
	District     string    `json:"district,omitempty"`
	Images       []string  `json:"images"`
	HarvestDate  string    `json:"harvestDate"` // YYYY-MM-DD, passed through as-is
	Description  string    `json:"description,omitempty"`
	Status       string    `json:"status,omitempty"`
	Owner        CropOwner `json:"owner"`
}

// NewCrop is the create/update payload: a full listing minus the
// server-assigned id and owner (the API sets the owner from the bearer token).
type NewCrop struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	PricePerUnit float64  `json:"pricePerUnit"`
	Location     string   `json:"location"`
	District     string   `json:"district,omitempty"`
	Images       []string `json:"images"`
	HarvestDate  string   `json:"harvestDate"`
	Description  string   `json:"description,omitempty"`
}

// CropFilter holds the supported query parameters for listing crops.
type CropFilter struct {
	Search string
	Type   string
	Sort   string
}
