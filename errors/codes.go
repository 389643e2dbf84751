package errors

// ErrorCode identifies an application error category
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS   ErrorCode = 1003
	ErrorCode_INVALID_PAYLOAD  ErrorCode = 1004

	// Webhook intake
	ErrorCode_WEBHOOK_MALFORMED_EVENT ErrorCode = 2000
	ErrorCode_WEBHOOK_MISSING_FIELD   ErrorCode = 2001

	// Pipeline stages
	ErrorCode_MEDIA_DOWNLOAD_FAILED  ErrorCode = 3000
	ErrorCode_STORAGE_UPLOAD_FAILED  ErrorCode = 3001
	ErrorCode_TRANSCRIPTION_FAILED   ErrorCode = 3002
	ErrorCode_SUMMARY_FAILED         ErrorCode = 3003
	ErrorCode_NOTIFICATION_FAILED    ErrorCode = 3004
	ErrorCode_PERSISTENCE_FAILED     ErrorCode = 3005
	ErrorCode_PROCESSING_FAILED      ErrorCode = 3006
	ErrorCode_ENRICHMENT_FAILED      ErrorCode = 3007
	ErrorCode_CLASSIFICATION_FAILED  ErrorCode = 3008
	ErrorCode_VECTOR_INDEX_FAILED    ErrorCode = 3009
	ErrorCode_SEARCH_FAILED          ErrorCode = 3010

	// Infrastructure
	ErrorCode_DB_QUERY_FAILED              ErrorCode = 4000
	ErrorCode_DB_TRANSACTION_FAILED        ErrorCode = 4001
	ErrorCode_INTEGRATION_STORAGE_FAILED   ErrorCode = 4002
	ErrorCode_INTEGRATION_EXTERNAL_FAILED  ErrorCode = 4003
)

// String returns a stable name for logging
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_ALREADY_EXISTS:
		return "ALREADY_EXISTS"
	case ErrorCode_INVALID_PAYLOAD:
		return "INVALID_PAYLOAD"
	case ErrorCode_WEBHOOK_MALFORMED_EVENT:
		return "WEBHOOK_MALFORMED_EVENT"
	case ErrorCode_WEBHOOK_MISSING_FIELD:
		return "WEBHOOK_MISSING_FIELD"
	case ErrorCode_MEDIA_DOWNLOAD_FAILED:
		return "MEDIA_DOWNLOAD_FAILED"
	case ErrorCode_STORAGE_UPLOAD_FAILED:
		return "STORAGE_UPLOAD_FAILED"
	case ErrorCode_TRANSCRIPTION_FAILED:
		return "TRANSCRIPTION_FAILED"
	case ErrorCode_SUMMARY_FAILED:
		return "SUMMARY_FAILED"
	case ErrorCode_NOTIFICATION_FAILED:
		return "NOTIFICATION_FAILED"
	case ErrorCode_PERSISTENCE_FAILED:
		return "PERSISTENCE_FAILED"
	case ErrorCode_PROCESSING_FAILED:
		return "PROCESSING_FAILED"
	case ErrorCode_ENRICHMENT_FAILED:
		return "ENRICHMENT_FAILED"
	case ErrorCode_CLASSIFICATION_FAILED:
		return "CLASSIFICATION_FAILED"
	case ErrorCode_VECTOR_INDEX_FAILED:
		return "VECTOR_INDEX_FAILED"
	case ErrorCode_SEARCH_FAILED:
		return "SEARCH_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	case ErrorCode_DB_TRANSACTION_FAILED:
		return "DB_TRANSACTION_FAILED"
	case ErrorCode_INTEGRATION_STORAGE_FAILED:
		return "INTEGRATION_STORAGE_FAILED"
	case ErrorCode_INTEGRATION_EXTERNAL_FAILED:
		return "INTEGRATION_EXTERNAL_FAILED"
	default:
		return "UNKNOWN"
	}
}
