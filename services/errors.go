package services

import "errors"

var (
	ErrMemberNotFound      = errors.New("member not found")
	ErrPublicationNotFound = errors.New("publication not found")
	ErrConferenceNotFound  = errors.New("conference not found")

	// ErrDuplicateIdentifierURL is returned on manual publication inserts
	// whose identifier URL is already taken. The ingest path skips
	// duplicates silently instead.
	ErrDuplicateIdentifierURL = errors.New("publication with this identifier URL already exists")

	// ErrUpstreamRateLimited means the provider kept answering 429 until the
	// retry budget ran out.
	ErrUpstreamRateLimited = errors.New("provider rate limit exceeded after retries")

	// ErrUpstreamExhausted means no attempt produced a member profile.
	ErrUpstreamExhausted = errors.New("provider returned no member data after all attempts")
)
