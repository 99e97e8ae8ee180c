package scriptgen

import "errors"

var (
	ErrDraftBlocked        = errors.New("script draft blocked by provider")
	ErrEmptyScript         = errors.New("script provider returned empty reply")
	ErrScriptUnparsable    = errors.New("script reply is not a valid scene array")
	ErrProviderUnavailable = errors.New("script provider unavailable")
)
