package constvars

const (
	NewbornCreatedMessage      = "newborn screening record created"
	NewbornGetSuccessMessage   = "newborn screening record found"
	NewbornListSuccessMessage  = "newborn screening records found"
	NewbornUpdatedMessage      = "newborn screening record updated"
	NewbornDeletedMessage      = "newborn screening record deactivated"
	NewbornBundleBuiltMessage  = "newborn screening bundle built"
	OrganizationCreatedMessage = "organization created"
	OrganizationGetMessage     = "organization found"
	OrganizationListMessage    = "organizations found"
	OrganizationUpdatedMessage = "organization updated"
	OrganizationDeletedMessage = "organization deleted"
	HealthOKMessage            = "ok"
)
