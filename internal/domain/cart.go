package domain

// CartItem is one checkout line as submitted by the client. Prices are the
// client's tier calculation and are re-derived server-side before persisting.
type CartItem struct {
	EquipmentID int32  `json:"equipmentId"`
	Name        string `json:"name"`
	DateFrom    string `json:"dateFrom"`
	DateTo      string `json:"dateTo"`
	Days        int32  `json:"days"`
	Quantity    int32  `json:"quantity"`
	DailyPrice  int32  `json:"dailyPrice"`
	Deposit     int32  `json:"deposit"`
	TotalPrice  int32  `json:"totalPrice"`
}

// ContactInfo carries the customer fields of a checkout request.
type ContactInfo struct {
	CustomerName    string `json:"customerName"`
	CustomerEmail   string `json:"customerEmail"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	CustomerNote    string `json:"customerNote,omitempty"`
	PickupLocation  string `json:"pickupLocation"`
}
