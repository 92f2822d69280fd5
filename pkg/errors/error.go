package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"

	// DexCalculationError represents an arithmetic overflow while computing
	// a quote-leg amount (price times quantity).
	DexCalculationError ErrorCode = "dex_calculation_error"
	// DexOrderNotFound represents a cancel request targeting an order id that
	// is absent from both sides of the book.
	DexOrderNotFound ErrorCode = "dex_order_not_found"
	// DexOrderNotOwned represents a cancel request issued by a party that
	// does not own the targeted order.
	DexOrderNotOwned ErrorCode = "dex_order_not_owned"
	// DexMakerAccountMismatch represents a resolved counter-party settlement
	// account whose recorded owner does not match the popped maker order.
	DexMakerAccountMismatch ErrorCode = "dex_maker_account_mismatch"
	// DexTransferError represents a custody ledger transfer that was refused
	// or could not be performed.
	DexTransferError ErrorCode = "dex_transfer_error"
	// DexInvalidOrder represents a place request with a non-positive price
	// or quantity.
	DexInvalidOrder ErrorCode = "dex_invalid_order"
	// DexInvalidSide represents an order request with an unknown side.
	DexInvalidSide ErrorCode = "dex_invalid_side"

	// LedgerUnknownAccount represents a transfer or resolution referencing an
	// account the ledger does not know.
	LedgerUnknownAccount ErrorCode = "ledger_unknown_account"
	// LedgerInsufficientFunds represents a transfer exceeding the source
	// account balance.
	LedgerInsufficientFunds ErrorCode = "ledger_insufficient_funds"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
)
