package structs

type LoginRequest struct {
	Password string `json:"password" validate:"required,min=1,max=200"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending paid in_process fulfilled cancellation_requested cancelled refunded"`
}

type UpdateStoreSettingsRequest struct {
	Mode          string  `json:"mode" validate:"required,oneof=auto manual"`
	IsOpen        *bool   `json:"is_open,omitempty"`
	ClosedMessage *string `json:"closed_message,omitempty" validate:"omitempty,max=300"`
}

type UpdateShopEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
