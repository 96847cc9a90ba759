package models

import "database/sql"

type Category struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	IsCustom bool           `json:"is_custom"`
	UserID   sql.NullString `json:"-"` // NULL for system-default categories
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type UpdateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}
