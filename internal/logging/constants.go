package logging

// Standardized field names for structured logging. Using the same keys
// everywhere keeps log output filterable.
const (
	FieldMerchant    = "merchant"
	FieldMerchantKey = "merchant_key"
	FieldCategory    = "category"
	FieldLine        = "schedule_c_line"
	FieldSource      = "source"
	FieldExpenseID   = "expense_id"
	FieldUploadID    = "upload_id"
	FieldPath        = "path"
	FieldAddr        = "addr"
	FieldModel       = "model"
	FieldCount       = "count"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldStatus      = "status"
	FieldMethod      = "method"
)
