package model

import "strings"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc"/"desc" in any case.
func ParseDirection(raw string) (Direction, bool) {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case Asc:
		return Asc, true
	case Desc:
		return Desc, true
	}
	return "", false
}

// SortOrder orders a result set by one task property.
type SortOrder struct {
	Property  string
	Direction Direction
}

// PageRequest selects a zero-based page of a sorted result set.
type PageRequest struct {
	Number int
	Size   int
	Sort   []SortOrder
}

// Normalized clamps the page number and size into the accepted range.
func (p PageRequest) Normalized() PageRequest {
	if p.Number < 0 {
		p.Number = 0
	}
	switch {
	case p.Size <= 0:
		p.Size = DefaultPageSize
	case p.Size > MaxPageSize:
		p.Size = MaxPageSize
	}
	return p
}

func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
}

func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.TotalElements + int64(p.Size) - 1) / int64(p.Size))
}

var taskSortColumns = map[string]string{
	"id":          "id",
	"title":       "title",
	"description": "description",
	"dueDate":     "due_date",
	"completed":   "completed",
}

// TaskSortColumn maps a JSON task property to its column name.
func TaskSortColumn(property string) (string, bool) {
	col, ok := taskSortColumns[property]
	return col, ok
}
