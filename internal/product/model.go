package product

// Product is a row of the product table as served to clients.
type Product struct {
	ID          int64   `json:"id_product"`
	Name        string  `json:"name"`
	Quantity    int32   `json:"qty"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// Input is the client-writable subset of Product used by create and update.
type Input struct {
	Name        string  `json:"name"`
	Quantity    int32   `json:"qty"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}
