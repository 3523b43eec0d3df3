// Package forms validates the admin catalog edit forms and the public quote
// form. Rules are applied field by field and every violated field is
// reported, keyed by its JSON name, with the first violated rule's message.
package forms

import "unicode/utf8"

// FieldErrors maps a field name to a user-facing validation message.
type FieldErrors map[string]string

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// add records the first violation for a field; later rules for the same
// field are ignored.
func (e FieldErrors) add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
