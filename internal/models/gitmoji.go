// Package models defines the domain types for the gitmoji list.
package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Entry is one gitmoji as published by the upstream registry.
type Entry struct {
	Emoji       string `json:"emoji"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Validate checks the fields the list line cannot be built without.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Emoji, validation.Required),
	)
}

// Registry is the top-level upstream document.
type Registry struct {
	Gitmojis []Entry `json:"gitmojis"`
}

// Validate rejects a missing or empty gitmojis array and validates each entry.
func (r *Registry) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Gitmojis, validation.Required),
	)
}
