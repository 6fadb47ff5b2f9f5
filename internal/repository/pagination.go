package repository

import "gorm.io/gorm"

// PageSize is the fixed number of posts per page.
const PageSize = 15

// Page is a 1-indexed page number as callers send it.
type Page int

// NewPage clamps anything below 1 to the first page.
func NewPage(n int) Page {
	if n < 1 {
		return 1
	}
	return Page(n)
}

// Offset converts the caller-facing page into a row offset: page 1 is offset 0.
func (p Page) Offset() int {
	return (int(NewPage(int(p))) - 1) * PageSize
}

// Paginate limits a query to the rows of page p.
func Paginate(p Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(PageSize)
	}
}
