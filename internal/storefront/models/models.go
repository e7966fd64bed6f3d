package models

// ============================================================
// Catalog Rows
// ============================================================

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"category_id"`
	ImageURL    string   `json:"image_url"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
	Sizes       []string `json:"sizes,omitempty"`
}

// ============================================================
// Account Rows
// ============================================================

type Profile struct {
	ID       string `json:"id"`
	Gamertag string `json:"gamertag"`
	Email    string `json:"email"`
}

type UserRole struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ============================================================
// Order Rows
// ============================================================

type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Size      string  `json:"size"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Order struct {
	ID              string      `json:"id,omitempty"`
	CustomerName    string      `json:"customer_name"`
	CustomerEmail   string      `json:"customer_email"`
	CustomerPhone   string      `json:"customer_phone"`
	CustomerAddress string      `json:"customer_address"`
	PaymentMethod   string      `json:"payment_method"`
	TotalAmount     float64     `json:"total_amount"`
	Items           []OrderItem `json:"items"`
	Status          string      `json:"status"`
}
