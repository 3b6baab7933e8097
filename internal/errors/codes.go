package errors

// Error code constants, CATEGORY_SPECIFIC_DETAIL. Clients map on the code,
// the message is for humans.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN"
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// Resources (RESOURCE_)
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// Catalog (CATALOG_)
	CatalogProductNotFound     = "CATALOG_PRODUCT_NOT_FOUND"
	CatalogProductTypeNotFound = "CATALOG_PRODUCT_TYPE_NOT_FOUND"
	CatalogCategoryNotFound    = "CATALOG_CATEGORY_NOT_FOUND"
	CatalogCategoryExists      = "CATALOG_CATEGORY_EXISTS"
	CatalogCategoryInUse       = "CATALOG_CATEGORY_IN_USE"
	CatalogVariantNotFound     = "CATALOG_VARIANT_NOT_FOUND"
	CatalogSubOptionMismatch   = "CATALOG_SUB_OPTION_MISMATCH"
	CatalogInvalidSize         = "CATALOG_INVALID_SIZE"
	CatalogNoQuote             = "CATALOG_NO_QUOTE"

	// Pricing (PRICING_)
	PricingInvalidMarkup = "PRICING_INVALID_MARKUP"
	PricingInvalidCost   = "PRICING_INVALID_COST"

	// Upload (UPLOAD_)
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFailed          = "UPLOAD_FAILED"
	UploadNotConfigured   = "UPLOAD_NOT_CONFIGURED"

	// Internal (INTERNAL_)
	InternalServerError   = "INTERNAL_SERVER_ERROR"
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR"
	InternalSeedError     = "INTERNAL_SEED_ERROR"
)
