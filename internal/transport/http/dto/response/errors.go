package response

// error codes returned in ErrorResponse.Error
const (
	CodeInvalidRequest   = "invalid_request"
	CodeNotFound         = "not_found"
	CodeValidationFailed = "validation_failed"
	CodeConflict         = "conflict"
	CodeStoreUnavailable = "store_unavailable"
	CodeSetupRequired    = "setup_required"
	CodeFileTooLarge     = "file_too_large"
	CodeUnsupportedType  = "unsupported_media_type"
	CodeInternal         = "internal_error"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  StatusError,
		Error:   CodeInvalidRequest,
		Details: "Invalid request format",
	}

	ErrInvalidID = ErrorResponse{
		Status:  StatusError,
		Error:   CodeInvalidRequest,
		Details: "Identifier must be a UUID",
	}

	ErrFileRequired = ErrorResponse{
		Status:  StatusError,
		Error:   CodeInvalidRequest,
		Details: "File is required",
	}

	ErrInternal = ErrorResponse{
		Status:  StatusError,
		Error:   CodeInternal,
		Details: "Internal server error",
	}
)
