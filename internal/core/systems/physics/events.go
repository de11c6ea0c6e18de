package physics

const (
	EventStep         = "physics.step"
	EventContactBegin = "physics.contact.begin"
	EventContactEnd   = "physics.contact.end"
)

// StepStats summarizes one fixed step across all of its substeps.
type StepStats struct {
	Step       uint64 `json:"step"`
	Iterations int    `json:"iterations"`
	Contacts   int    `json:"contacts"`
	Resolved   int    `json:"resolved"`
	Separating int    `json:"separating"`
}

// ContactEvent names a pair of bodies that started or stopped touching. A is
// always the body registered first.
type ContactEvent struct {
	Step uint64 `json:"step"`
	A    ID     `json:"a"`
	B    ID     `json:"b"`
}
