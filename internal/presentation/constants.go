package presentation

const (
	TypeKey   = "Content-Type"
	ReasonTag = "X-Reason"

	TypeParam      = "type"
	PatientIDParam = "patient_id"
	SinceParam     = "since"
	UntilParam     = "until"
)
