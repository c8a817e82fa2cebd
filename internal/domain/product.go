package domain

import "time"

type Product struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Category  string    `gorm:"type:varchar(100);index" json:"category"`
	Price     float64   `gorm:"not null" json:"price"`
	Stock     int       `gorm:"not null;default:0" json:"stock"`
	Unit      string    `gorm:"type:varchar(20)" json:"unit"`
	Image     string    `gorm:"type:text" json:"image"`
	IsPopular bool      `json:"is_popular"`
	IsNew     bool      `json:"is_new"`
	Status    string    `gorm:"type:varchar(20);default:active" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DashboardStats struct {
	TotalOrders   int64     `json:"total_orders"`
	PendingOrders int64     `json:"pending_orders"`
	TotalRevenue  float64   `json:"total_revenue"`
	LowStock      []Product `json:"low_stock"`
}
