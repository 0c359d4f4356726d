package services

// services should wrap any error that can come from their process
//    e.i. http errors should be wrapped
//    and parsing errors need not be wrapped

import "errors"

var (
	// retrying later could work
	ErrTemporaryNetworkFailure = errors.New("network failure")

	// retrying probably wouldn't work, the site no longer looks the way the
	// fetcher or extractor expects it to
	ErrIncorrectAssumption = errors.New("unrecoverable failure")
)
