package model

type Product struct {
	ID          int64   `json:"id,omitempty"`
	SKU         string  `json:"sku,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock,omitempty"`
}

type Customer struct {
	ID      int64  `json:"id,omitempty"`
	UserID  int64  `json:"userId,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type Warehouse struct {
	ID       int64   `json:"id,omitempty"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Capacity int     `json:"capacity,omitempty"`
	Lat      float64 `json:"lat,omitempty"`
	Lng      float64 `json:"lng,omitempty"`
}
