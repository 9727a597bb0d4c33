package stats

import (
	"cmp"
	"slices"
	"strings"

	"github.com/sadopc/stitchr/internal/store"
)

// SortOrder names a list ordering. The string form is what gets stored in
// the session settings and the config file.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
	SortName   SortOrder = "name"
	SortBrand  SortOrder = "brand"
	SortColor  SortOrder = "color"
)

var (
	RowSorts  = []SortOrder{SortNewest, SortOldest, SortName}
	YarnSorts = []SortOrder{SortNewest, SortOldest, SortBrand, SortColor}
)

// Label is the human readable name of o.
func (o SortOrder) Label() string {
	switch o {
	case SortNewest:
		return "Newest first"
	case SortOldest:
		return "Oldest first"
	case SortName:
		return "Alphabetical"
	case SortBrand:
		return "Brand"
	case SortColor:
		return "Color"
	}
	return string(o)
}

// Next returns the order after o in orders, wrapping around. Unknown
// orders map to the first one.
func Next(orders []SortOrder, o SortOrder) SortOrder {
	i := slices.Index(orders, o)
	return orders[(i+1)%len(orders)]
}

// ParseSort returns s if it is one of orders, else the first of orders.
func ParseSort(orders []SortOrder, s string) SortOrder {
	if o := SortOrder(s); slices.Contains(orders, o) {
		return o
	}
	return orders[0]
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// byCreated orders by creation time then ID, which makes insertion order
// total even when two records share a timestamp.
func byCreated[T any](created func(T) (int64, int64)) func(a, b T) int {
	return func(a, b T) int {
		at, aid := created(a)
		bt, bid := created(b)
		return cmp.Or(cmp.Compare(at, bt), cmp.Compare(aid, bid))
	}
}

func reversed[T any](f func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return f(b, a) }
}

var rowCreated = byCreated(func(r store.Row) (int64, int64) { return r.CreatedAt.UnixNano(), r.ID })

// SortRows returns a sorted copy of rows.
func SortRows(rows []store.Row, o SortOrder) []store.Row {
	out := slices.Clone(rows)
	switch o {
	case SortOldest:
		slices.SortStableFunc(out, rowCreated)
	case SortName:
		slices.SortStableFunc(out, func(a, b store.Row) int {
			return cmp.Or(foldCompare(a.Name, b.Name), rowCreated(a, b))
		})
	default:
		slices.SortStableFunc(out, reversed(rowCreated))
	}
	return out
}

var yarnCreated = byCreated(func(y store.Yarn) (int64, int64) { return y.CreatedAt.UnixNano(), y.ID })

// SortYarn returns a sorted copy of yarn.
func SortYarn(yarn []store.Yarn, o SortOrder) []store.Yarn {
	out := slices.Clone(yarn)
	switch o {
	case SortOldest:
		slices.SortStableFunc(out, yarnCreated)
	case SortBrand:
		slices.SortStableFunc(out, func(a, b store.Yarn) int {
			return cmp.Or(foldCompare(a.Brand, b.Brand), yarnCreated(a, b))
		})
	case SortColor:
		slices.SortStableFunc(out, func(a, b store.Yarn) int {
			return cmp.Or(foldCompare(a.Color, b.Color), yarnCreated(a, b))
		})
	default:
		slices.SortStableFunc(out, reversed(yarnCreated))
	}
	return out
}

// FilterPhotos keeps photos whose tag contains tag, ignoring case. A blank
// tag keeps everything.
func FilterPhotos(photos []store.Photo, tag string) []store.Photo {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return photos
	}
	var out []store.Photo
	for _, p := range photos {
		if strings.Contains(strings.ToLower(p.Tag), tag) {
			out = append(out, p)
		}
	}
	return out
}
