package order

type CheckoutReq struct {
	Name         string  `json:"name" validate:"required,min=2,max=25"`
	Address      string  `json:"address" validate:"required,min=2,max=100"`
	Phone        string  `json:"phone" validate:"required"`
	Instructions *string `json:"instructions" validate:"omitempty,min=25,max=1000"`
}
