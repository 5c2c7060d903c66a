package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Catalog and deck.
	WineNotFound       failure.ErrorCode = "WineNotFound"
	UpstreamFetchError failure.ErrorCode = "UpstreamFetchError"
	InvalidSyncRequest failure.ErrorCode = "InvalidSyncRequest"
	SeedAlreadyRunning failure.ErrorCode = "SeedAlreadyRunning"
	RakutenAPIError    failure.ErrorCode = "RakutenAPIError"
)
