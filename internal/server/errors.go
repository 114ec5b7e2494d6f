package server

import "errors"

// Validation errors. Their messages are returned to clients verbatim.
var (
	// ErrInvalidURL is returned when the url field is missing or not http(s).
	ErrInvalidURL = errors.New("有効なURLを入力してください")

	// ErrURLListRequired is returned when urls is missing, not a list, or empty.
	ErrURLListRequired = errors.New("URLのリストを入力してください")

	// ErrTooManyURLs is returned when more URLs than the batch limit are sent.
	ErrTooManyURLs = errors.New("URLは最大20個までです")

	// ErrMalformedBody is returned when the request body is not valid JSON.
	ErrMalformedBody = errors.New("リクエストボディが正しいJSONではありません")

	// ErrMethodNotAllowed is returned for a method the route does not serve.
	ErrMethodNotAllowed = errors.New("許可されていないメソッドです")

	// ErrInternal is returned when a handler panics.
	ErrInternal = errors.New("内部エラーが発生しました")
)
