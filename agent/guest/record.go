// Package guest builds the lexical guest-book index and loads guest records
// from the configured source.
package guest

import "strings"

// Record is one invitee. Records are never mutated after load.
type Record struct {
	Name        string `json:"name"`
	Relation    string `json:"relation"`
	Description string `json:"description"`
	Email       string `json:"email"`
}

// Text is the indexed form of the record and the text returned to callers.
func (r Record) Text() string {
	return strings.Join([]string{
		"Name: " + r.Name,
		"Relation: " + r.Relation,
		"Description: " + r.Description,
		"Email: " + r.Email,
	}, "\n")
}
