package domain

import "errors"

var (
	// ErrPostNotFound is returned when no post matches a slug or id.
	ErrPostNotFound = errors.New("post not found")

	// ErrMissingField is returned when a compose request lacks a required field.
	ErrMissingField = errors.New("missing required field")

	// ErrIdentityRejected is returned when the identity provider handshake
	// succeeds but the returned identity is not the authorized operator.
	ErrIdentityRejected = errors.New("identity rejected")
)
