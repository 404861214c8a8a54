package models

// Date format used everywhere an expense date is stored or rendered.
const DateLayout = "2006-01-02"

// Upload limits
const (
	MaxUploadBytes = 20 * 1024 * 1024
)

// File permissions
const (
	PermissionKeyFile    = 0600
	PermissionDataDir    = 0700
	PermissionUploadFile = 0600
	PermissionReportFile = 0644
)
