package models

import "fmt"

var (
	ErrCategoryNotFound = fmt.Errorf("category not found")
)

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}
