package domain

import "errors"

var (
	// ErrCredentialsTaken is returned by signup when the email is already
	// on record.
	ErrCredentialsTaken = errors.New("credentials taken")
	// ErrAccessDenied covers every authentication mismatch: unknown email,
	// wrong password, token/email mismatch, forged or expired token. One
	// error for all of them, so callers cannot tell which check failed.
	ErrAccessDenied = errors.New("access denied")
	// ErrNotFound is for direct lookups that require an existing record.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is the repository-level unique violation, mapped
	// by the auth service to ErrCredentialsTaken.
	ErrDuplicateEmail = errors.New("email already exists")
	// ErrAuthorNotFound is returned when a post references a user id that
	// does not exist.
	ErrAuthorNotFound = errors.New("no user with provided id exists")
	// ErrNotPostAuthor is returned when a user tries to update a post
	// somebody else created.
	ErrNotPostAuthor = errors.New("user is not the author of the post")
)
