package domain

// Equipment is a single catalog entry: one piece of rentable gear with
// tiered daily pricing and a fixed number of physical units (stock).
type Equipment struct {
	ID             int32    `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	DailyPrice     int32    `json:"dailyPrice"` // legacy flat rate, kept for older clients
	Price1To3Days  int32    `json:"price1to3Days"`
	Price4To7Days  int32    `json:"price4to7Days"`
	Price8PlusDays int32    `json:"price8PlusDays"`
	Deposit        int32    `json:"deposit"`
	Stock          int32    `json:"stock"`
	ImageURL       string   `json:"imageUrl"`
	SortOrder      int32    `json:"sortOrder"`
	Categories     []string `json:"categories"`
}

// SortOrderUpdate is one entry of an admin catalog reorder request.
type SortOrderUpdate struct {
	ID        int32 `json:"id"`
	SortOrder int32 `json:"sortOrder"`
}

// Validate rejects catalog entries with a blank name or negative stock or prices.
func (e *Equipment) Validate() error {
	if e.Name == "" {
		return ErrEmptyName
	}
	if e.Stock < 0 {
		return ErrNegativeStock
	}
	if e.Price1To3Days < 0 || e.Price4To7Days < 0 || e.Price8PlusDays < 0 || e.Deposit < 0 {
		return ErrNegativePrice
	}
	return nil
}
