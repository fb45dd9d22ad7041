package structs

// CheckoutItemInput is one client-submitted line. Only the menu item id and
// quantity are trusted; prices always come from the server-side menu table.
type CheckoutItemInput struct {
	MenuItemId int `json:"menuItemId" validate:"required"`
	Quantity   int `json:"quantity" validate:"required"`
}

type CheckoutRequest struct {
	Items         []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
	OrderType     string              `json:"orderType" validate:"required,oneof=pickup dine_in"`
	PickupTime    string              `json:"pickupTime,omitempty" validate:"omitempty,max=50"`
	CustomerName  string              `json:"customerName" validate:"required,min=2,max=100"`
	CustomerPhone string              `json:"customerPhone" validate:"required,min=5,max=30"`
	CustomerEmail string              `json:"customerEmail,omitempty" validate:"omitempty,email"`
	Notes         string              `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type CheckoutResponse struct {
	URL         string `json:"url"`
	OrderNumber string `json:"order_number"`
}
