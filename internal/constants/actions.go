package constants

// Audit actions.
const (
	Create      = "CREATE"
	Update      = "UPDATE"
	Delete      = "DELETE"
	CreateIndex = "CREATE_INDEX"
	Seed        = "SEED"
	Login       = "LOGIN"
)

const (
	PerformedByScript = "script"
	PerformedBySystem = "system"
)
