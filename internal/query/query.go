// Package query translates flat query-string parameters into document-store
// queries plus pagination metadata, shared by every list endpoint.
package query

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// reservedKeys carry pagination/selection meaning and are never treated as
// entity-field filters.
var reservedKeys = map[string]struct{}{
	"select": {},
	"sort":   {},
	"page":   {},
	"limit":  {},
	"search": {},
}

// ListParams is the parsed form of a list request's query string.
type ListParams struct {
	Conditions []Condition
	Search     string
	Select     []string
	Sort       []string
	Page       int64
	Limit      int64
}

// Parse reads a query string into ListParams. Non-numeric page/limit values
// silently fall back to the defaults rather than erroring.
func Parse(values url.Values) ListParams {
	p := ListParams{
		Conditions: parseConditions(values),
		Search:     values.Get("search"),
		Page:       DefaultPage,
		Limit:      DefaultLimit,
	}
	if sel := values.Get("select"); sel != "" {
		p.Select = splitCSV(sel)
	}
	if sort := values.Get("sort"); sort != "" {
		p.Sort = splitCSV(sort)
	}
	if n, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Filter builds the store filter. A search term replaces the structured
// conditions entirely with an OR of case-insensitive substring matches over
// searchFields; the two are mutually exclusive, a known limitation. The
// visibility predicate is ANDed in afterwards so clients cannot override it.
func (p ListParams) Filter(searchFields []string, visibility bson.M) bson.M {
	base := toFilter(p.Conditions)
	if p.Search != "" && len(searchFields) > 0 {
		or := make(bson.A, 0, len(searchFields))
		pattern := regexp.QuoteMeta(p.Search)
		for _, f := range searchFields {
			or = append(or, bson.M{f: primitive.Regex{Pattern: pattern, Options: "i"}})
		}
		base = bson.M{"$or": or}
	}
	if len(visibility) == 0 {
		return base
	}
	if len(base) == 0 {
		return visibility
	}
	return bson.M{"$and": bson.A{base, visibility}}
}

// Skip is the zero-based offset for the requested page.
func (p ListParams) Skip() int64 { return (p.Page - 1) * p.Limit }

// FindOptions builds projection, sort and offset/limit for the store.
// Default sort is newest first.
func (p ListParams) FindOptions() *options.FindOptions {
	opts := options.Find().SetSkip(p.Skip()).SetLimit(p.Limit)

	if len(p.Select) > 0 {
		proj := bson.D{}
		for _, f := range p.Select {
			proj = append(proj, bson.E{Key: f, Value: 1})
		}
		opts.SetProjection(proj)
	}

	sort := bson.D{}
	for _, s := range p.Sort {
		if field, ok := strings.CutPrefix(s, "-"); ok {
			sort = append(sort, bson.E{Key: field, Value: -1})
		} else {
			sort = append(sort, bson.E{Key: s, Value: 1})
		}
	}
	if len(sort) == 0 {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	return opts.SetSort(sort)
}

// PageRef points a client at an adjacent page.
type PageRef struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Pagination describes the neighbours of the returned page.
type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// Paginate computes next/prev from the collection total. Note the total the
// callers supply is the unfiltered document count, so next may be present
// even when the filtered result set has no further pages; preserved from the
// original behavior and documented as a limitation.
func (p ListParams) Paginate(total int64) Pagination {
	var pg Pagination
	if p.Skip()+p.Limit < total {
		pg.Next = &PageRef{Page: p.Page + 1, Limit: p.Limit}
	}
	if p.Skip() > 0 {
		pg.Prev = &PageRef{Page: p.Page - 1, Limit: p.Limit}
	}
	return pg
}

// PaginateOffset is Paginate for endpoints that page without ListParams.
func PaginateOffset(page, limit, total int64) Pagination {
	var pg Pagination
	if (page-1)*limit+limit < total {
		pg.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if (page-1)*limit > 0 {
		pg.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return pg
}

// ParsePageLimit reads bare page/limit values with the given default limit.
func ParsePageLimit(values url.Values, defLimit int64) (page, limit int64) {
	page, limit = DefaultPage, defLimit
	if n, err := strconv.ParseInt(values.Get("page"), 10, 64); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.ParseInt(values.Get("limit"), 10, 64); err == nil && n > 0 {
		limit = n
	}
	return page, limit
}
