// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity turns whatever the user typed into the email the backend signs in with.

Architecture:

  - Identifier: classification into email or username by the presence of '@'.
  - Resolver: single exact-match username lookup through a [Directory].
  - Directories: the backend data API (default) or PostgreSQL via pgx.

A username that resolves to nothing is reported as [ErrIdentifierNotFound] and
the caller must not attempt a sign-in.
*/
package identity

import (
	"strings"

	"github.com/taibuivan/authgate/internal/platform/validate"
)

// Kind is the classification of an identifier.
type Kind string

const (
	KindEmail    Kind = "email"
	KindUsername Kind = "username"
)

// Identifier is a classified sign-in identifier.
type Identifier struct {
	Value string
	Kind  Kind
}

// Classify reports whether value is an email or a username.
// Any '@' makes it an email; shape is checked separately.
func Classify(value string) Kind {
	if strings.Contains(value, "@") {
		return KindEmail
	}
	return KindUsername
}

// Parse trims value and classifies it.
func Parse(value string) Identifier {
	value = strings.TrimSpace(value)
	return Identifier{Value: value, Kind: Classify(value)}
}

// Valid reports whether the identifier has the shape its kind requires.
func (identifier Identifier) Valid() bool {
	if identifier.Kind == KindEmail {
		return validate.IsEmail(identifier.Value)
	}
	return validate.IsUsername(identifier.Value)
}
