package service

import "fmt"

// SortOrder selects how review listings are ordered.
type SortOrder int

const (
	SortLatest SortOrder = iota
	SortStarPoint
	SortGoodsCount
)

// ParseSortOrder maps the public filterId: 0 is latest first, 1 is highest
// star point first and anything else falls back to most goods first.
func ParseSortOrder(filterID int64) SortOrder {
	switch filterID {
	case 0:
		return SortLatest
	case 1:
		return SortStarPoint
	default:
		return SortGoodsCount
	}
}

// ParseUserSortOrder maps filterId for a user's own reviews, which only
// distinguish latest from star point.
func ParseUserSortOrder(filterID int64) SortOrder {
	if filterID == 0 {
		return SortLatest
	}
	return SortStarPoint
}

// OrderBy is the SQL ordering clause for the sort order. Ties break on
// written time, newest first.
func (o SortOrder) OrderBy() string {
	switch o {
	case SortStarPoint:
		return "reviews.star_point DESC, reviews.written_time DESC"
	case SortGoodsCount:
		return "reviews.goods_count DESC, reviews.written_time DESC"
	default:
		return "reviews.written_time DESC"
	}
}

func (o SortOrder) String() string {
	switch o {
	case SortLatest:
		return "latest"
	case SortStarPoint:
		return "star_point"
	case SortGoodsCount:
		return "goods_count"
	default:
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// PageRequest is a 1-based page of a listing.
type PageRequest struct {
	Page int
	Size int
	Sort SortOrder
}

// NewPageRequest clamps page and size into their valid ranges.
func NewPageRequest(page, size int, sort SortOrder) PageRequest {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return PageRequest{Page: page, Size: size, Sort: sort}
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Size
}
