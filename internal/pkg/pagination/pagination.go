package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage = 0
	DefaultSize = 20
	MaxSize     = 2000
)

var ErrInvalidSort = errors.New("invalid sort")

type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

type Order struct {
	Property  string
	Direction Direction
}

// Pageable is a zero-based page request with an optional sort.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

func NewPageable(page, size int, sort []Order) Pageable {
	if page < 0 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}
	return Pageable{
		Page: page,
		Size: size,
		Sort: sort,
	}
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

func (p Pageable) Limit() int {
	return p.Size
}

// ParseSort reads values in the "property[,property...][,asc|desc]" form.
func ParseSort(values []string) ([]Order, error) {
	var orders []Order
	for _, v := range values {
		parts := strings.Split(v, ",")
		dir := Asc
		last := strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
		if last == "asc" || last == "desc" {
			if last == "desc" {
				dir = Desc
			}
			parts = parts[:len(parts)-1]
		}
		if len(parts) == 0 {
			return nil, fmt.Errorf("%w: %q has no property", ErrInvalidSort, v)
		}
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				return nil, fmt.Errorf("%w: %q has an empty property", ErrInvalidSort, v)
			}
			orders = append(orders, Order{Property: p, Direction: dir})
		}
	}
	return orders, nil
}

type Info struct {
	Page       int
	Size       int
	TotalItems int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func NewInfo(page, size int, totalItems int64) *Info {
	totalPages := int(totalItems / int64(size))
	if totalItems%int64(size) > 0 {
		totalPages++
	}

	return &Info{
		Page:       page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
		HasNext:    page < totalPages-1,
		HasPrev:    page > 0,
	}
}

// LinkHeader renders the RFC 5988 Link header value for the page, keeping
// every query parameter of base except page and size.
func (i *Info) LinkHeader(base *url.URL) string {
	lastPage := 0
	if i.TotalPages > 0 {
		lastPage = i.TotalPages - 1
	}

	var links []string
	if i.HasNext {
		links = append(links, i.link(base, i.Page+1, "next"))
	}
	if i.HasPrev {
		links = append(links, i.link(base, i.Page-1, "prev"))
	}
	links = append(links, i.link(base, lastPage, "last"), i.link(base, 0, "first"))
	return strings.Join(links, ",")
}

func (i *Info) link(base *url.URL, page int, rel string) string {
	u := *base
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(i.Size))
	u.RawQuery = q.Encode()
	return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
}
