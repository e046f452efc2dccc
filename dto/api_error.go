package dto

type APIErrorResponse struct {
	Message   string    `json:"message"`
	ErrorCode ErrorCode `json:"error_code"`
}

type ErrorCode string

const (
	// upload related
	MissingFile         ErrorCode = "missing_file"
	EmptyDocument       ErrorCode = "empty_document"
	UnsupportedDocument ErrorCode = "unsupported_document"
	UnreadableDocument  ErrorCode = "unreadable_document"
	DocumentTooLarge    ErrorCode = "document_too_large"

	// download related
	InvalidDownloadName ErrorCode = "invalid_download_name"
	ExportNotFound      ErrorCode = "export_not_found"

	// general
	BadParameter  ErrorCode = "bad_parameter"
	Timeout       ErrorCode = "timeout"
	InternalError ErrorCode = "internal_error"
)
