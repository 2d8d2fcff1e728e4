package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *InformerError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *InformerError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *InformerError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Ingestion errors (source fetch/parse failures abort the run before any write)

func IngestionError(source string, cause error) *InformerError {
	return Wrap(cause, CategoryIngest, SeverityFatal, "catalog ingestion failed").
		WithContext("source", source)
}

func IngestionStatus(url string, status int) *InformerError {
	return New(CategoryIngest, SeverityFatal, "catalog source returned non-success status").
		WithContext("url", url).
		WithContext("status", status)
}

// Slug and path errors

func EmptySlug(input string) *InformerError {
	return New(CategorySlug, SeverityFatal, "slug derivation produced empty segment").
		WithContext("input", input)
}

func PathCollision(path, first, second string) *InformerError {
	return New(CategoryPublish, SeverityFatal, "two artifacts resolve to the same output path").
		WithContext("path", path).
		WithContext("first", first).
		WithContext("second", second)
}

// Publish-time consistency errors

func ArtifactInconsistency(reason, path string) *InformerError {
	return New(CategoryPublish, SeverityFatal, "artifact consistency check failed").
		WithContext("reason", reason).
		WithContext("path", path)
}

func PublishError(operation string, cause error) *InformerError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "publish operation failed").
		WithContext("operation", operation)
}

// Payment processor errors

func PaymentError(message string, cause error) *InformerError {
	return Wrap(cause, CategoryPayment, SeverityError, message)
}

func WebhookRejected(reason string) *InformerError {
	return New(CategoryPayment, SeverityWarning, "webhook rejected").
		WithContext("reason", reason)
}

// Network errors

func NetworkTimeout(url string, cause error) *InformerError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "network timeout").
		WithContext("url", url)
}

// Storage errors

func StorageError(operation string, cause error) *InformerError {
	return Wrap(cause, CategoryStorage, SeverityError, "order store operation failed").
		WithContext("operation", operation)
}

// Internal errors

func InternalError(message string, cause error) *InformerError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
