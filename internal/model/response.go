package model

// UserResponse wraps a single user.
type UserResponse struct {
	User User `json:"user"`
}

// UsersResponse wraps a list of users.
type UsersResponse struct {
	Users []User `json:"users"`
}

// TableResponse wraps a table with its details.
type TableResponse struct {
	Table TableDetails `json:"table"`
}

// TablesResponse wraps a list of tables.
type TablesResponse struct {
	Tables []Table `json:"tables"`
}

// DishesResponse wraps a list of dishes.
type DishesResponse struct {
	Dishes []Dish `json:"dishes"`
}

// ImageResponse returns the URL of an uploaded image.
type ImageResponse struct {
	URL string `json:"url"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
