// Package classifier maps a typed SQL command to the category it belongs to.
package classifier

import (
	"strings"

	"github.com/conorfennell/sqlgroups/internal/domain"
)

// Status is the outcome of a classification.
type Status int

const (
	Found Status = iota
	NotFound
	Empty
)

func (s Status) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// Result holds the outcome of Classify.
type Result struct {
	Status   Status
	Token    string // normalized first token, empty when Status is Empty
	Key      domain.Key
	Category domain.Category
}

// Normalize trims the input and returns its first whitespace-delimited token uppercased.
func Normalize(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

// Classify reports which category the first token of raw belongs to.
// Categories are searched in table order and the first matching example wins.
func Classify(raw string) Result {
	token := Normalize(raw)
	if token == "" {
		return Result{Status: Empty}
	}

	for _, c := range domain.Table() {
		for _, ex := range c.Examples {
			if token == domain.Keyword(ex) {
				return Result{Status: Found, Token: token, Key: c.Key, Category: c}
			}
		}
	}

	return Result{Status: NotFound, Token: token}
}
