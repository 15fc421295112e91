package service

import (
	"math"

	"github.com/noah-isme/campus-credit-api/internal/dto"
	"github.com/noah-isme/campus-credit-api/internal/locale"
	"github.com/noah-isme/campus-credit-api/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page selects a window of a filtered list.
type Page struct {
	Page     int
	PageSize int
}

func (p Page) normalise(fallbackSize int) Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if fallbackSize <= 0 {
		fallbackSize = defaultPageSize
	}
	if p.PageSize <= 0 {
		p.PageSize = fallbackSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

// paginate slices items to the requested page. Pages past the end are empty.
func paginate[T any](items []T, page Page) ([]T, *models.Pagination) {
	pagination := &models.Pagination{Page: page.Page, PageSize: page.PageSize, TotalCount: len(items)}
	pages := (len(items) + page.PageSize - 1) / page.PageSize
	if page.Page > pages {
		return []T{}, pagination
	}
	start := (page.Page - 1) * page.PageSize
	end := start + page.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], pagination
}

func labelerOrDefault(lab *locale.Labeler) *locale.Labeler {
	if lab != nil {
		return lab
	}
	return locale.New("", locale.Chinese.String())
}

func emptyState(count int, lab *locale.Labeler, key string) dto.EmptyState {
	if count > 0 {
		return dto.EmptyState{}
	}
	return dto.EmptyState{Empty: true, Message: lab.Text(key)}
}

func optionsWithSentinel(lab *locale.Labeler, sentinel string, values []string) []dto.FilterOption {
	options := make([]dto.FilterOption, 0, len(values)+1)
	options = append(options, dto.FilterOption{Value: sentinel, Label: lab.Sentinel(sentinel)})
	for _, v := range values {
		options = append(options, dto.FilterOption{Value: v, Label: v})
	}
	return options
}

func roundTo(value float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(value*factor) / factor
}

// orSentinel maps an omitted query value to the "show all" sentinel.
func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}
