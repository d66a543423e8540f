package domain

import (
	"encoding/json"
	"time"
)

// AuthInfo is the identity of a caller, as far as pagination cares about it.
//
// Pagination uses it only to compare against the owner of a PaginationRecord.
// How the identity was established (and what the caller may do) is decided elsewhere.
type AuthInfo struct {
	UserId string
}

// Bounds is an offset/limit window applied to a list query.
//
// A nil *Bounds means "no window": return everything.
type Bounds struct {
	Offset int
	Limit  int
}

// PaginationInfo is returned to clients along with a page of items.
//
// PageToken is empty on the last page of a sequence.
// The record behind the token stays alive in the cache for a while,
// so earlier pages can still be re-fetched with the old token value.
type PaginationInfo struct {
	Page      int    `json:"page"`
	PageSize  int    `json:"page_size"`
	PageToken string `json:"page_token,omitempty"`
}

// PaginationRecord is the persisted state of one in-flight list query.
//
// (Method, Kwargs) are fixed at creation.
// CurrentPage, PageSize, User and LastAccessed are updated in place
// each time the token is used.
type PaginationRecord struct {
	// opaque, unguessable identity of this record.
	Token string

	// owning user. Empty for anonymous callers.
	User string

	// name of the registered method this record is bound to.
	Method string

	// 1-based page number served most recently.
	CurrentPage int

	PageSize int

	// method parameters serialized through the method's schema,
	// with offset/limit stripped.
	Kwargs json.RawMessage

	LastAccessed time.Time
}

// Equal compares records field by field. Kwargs are compared as raw bytes.
func (r PaginationRecord) Equal(o PaginationRecord) bool {
	return r.Token == o.Token &&
		r.User == o.User &&
		r.Method == o.Method &&
		r.CurrentPage == o.CurrentPage &&
		r.PageSize == o.PageSize &&
		string(r.Kwargs) == string(o.Kwargs) &&
		r.LastAccessed.Equal(o.LastAccessed)
}
