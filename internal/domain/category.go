package domain

import "strings"

// Key identifies one of the four SQL command categories.
type Key string

const (
	DDL Key = "DDL"
	DML Key = "DML"
	DCL Key = "DCL"
	TCL Key = "TCL"
)

// Category describes a group of SQL commands.
type Category struct {
	Key         Key      `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Examples    []string `json:"examples" yaml:"examples"`
	Color       string   `json:"color" yaml:"color"` // accent used by the front ends
}

// Question is a single command drawn for the quiz along with the category it belongs to.
type Question struct {
	Command string
	Key     Key
}

var table = []Category{
	{
		Key:         DDL,
		Name:        "Data Definition Language",
		Description: "Used to define or modify the structure of the database and its objects, such as tables, indexes and users.",
		Examples:    []string{"CREATE", "ALTER", "DROP"},
		Color:       "blue",
	},
	{
		Key:         DML,
		Name:        "Data Manipulation Language",
		Description: "Used to query, insert, update and delete the data held inside database tables.",
		Examples:    []string{"SELECT", "INSERT", "UPDATE", "DELETE"},
		Color:       "green",
	},
	{
		Key:         DCL,
		Name:        "Data Control Language",
		Description: "Used to control access to the data in the database, granting or revoking user permissions.",
		Examples:    []string{"GRANT", "REVOKE"},
		Color:       "yellow",
	},
	{
		Key:         TCL,
		Name:        "Transaction Control Language",
		Description: "Used to manage database transactions, keeping data consistent by committing or undoing changes.",
		Examples:    []string{"COMMIT", "ROLLBACK", "SAVEPOINT"},
		Color:       "purple",
	},
}

// Table returns a copy of the category table in its fixed iteration order.
func Table() []Category {
	out := make([]Category, len(table))
	for i, c := range table {
		out[i] = c.clone()
	}
	return out
}

// Keys returns the category keys in table order.
func Keys() []Key {
	keys := make([]Key, len(table))
	for i, c := range table {
		keys[i] = c.Key
	}
	return keys
}

// Lookup returns the category for key.
func Lookup(key Key) (Category, bool) {
	for _, c := range table {
		if c.Key == key {
			return c.clone(), true
		}
	}
	return Category{}, false
}

// ParseKey normalizes s and reports whether it names a known category.
func ParseKey(s string) (Key, bool) {
	k := Key(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

// Valid reports whether k is one of the four category keys.
func (k Key) Valid() bool {
	switch k {
	case DDL, DML, DCL, TCL:
		return true
	}
	return false
}

func (k Key) String() string { return string(k) }

// Questions flattens the table into one (command, category) pair per example.
// The order follows the table, so categories with more examples contribute more pairs.
func Questions() []Question {
	var qs []Question
	for _, c := range table {
		for _, ex := range c.Examples {
			qs = append(qs, Question{Command: Keyword(ex), Key: c.Key})
		}
	}
	return qs
}

// Keyword reduces an example to the first word that identifies the command.
func Keyword(example string) string {
	fields := strings.Fields(example)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}

func (c Category) clone() Category {
	c.Examples = append([]string(nil), c.Examples...)
	return c
}
