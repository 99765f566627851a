package entity

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Collection names the CRM record type a match was found in.
type Collection string

const (
	CollectionCustomer Collection = "customer"
	CollectionLead     Collection = "lead"
)

// Record is a customer or lead as returned by the CRM. Only a handful of
// fields are read; everything else is carried through untouched.
type Record map[string]any

// ID returns the record identifier as decoded from the CRM payload.
func (r Record) ID() any {
	return r["id"]
}

// HasID reports whether the record carries a usable identifier.
func (r Record) HasID() bool {
	switch id := r.ID().(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(id) != ""
	case json.Number:
		return id != "" && id != "0"
	case float64:
		return id != 0
	case bool, map[string]any, []any:
		return false
	default:
		return true
	}
}

// IDString formats the identifier for use in URLs.
func (r Record) IDString() string {
	if !r.HasID() {
		return ""
	}
	return fmt.Sprint(r.ID())
}

// String returns the named field when it holds a string or number, and "" otherwise.
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// NewLead is the payload sent to the CRM when creating a lead.
type NewLead struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}
