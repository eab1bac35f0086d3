package dto

// ProductRequest payload for create and update. Price travels as a string
// and is parsed as a decimal server-side.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Stock       int      `json:"stock"`
	CategoryID  string   `json:"category_id"`
	Images      []string `json:"images"`
}
