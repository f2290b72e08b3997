package models

import "time"

const (
	PortfolioFolder = "portfolio"
)

type PortfolioImage struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	ImagePath   string    `db:"image_path" json:"-"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Category    Category  `db:"category" json:"category"`
}

type PortfolioPage struct {
	Count   int
	Page    int
	Pages   int
	Results []PortfolioImage
}
