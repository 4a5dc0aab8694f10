package domain

// ChildProfile is the static profile shown on the child page.
type ChildProfile struct {
	Name         string   `json:"name" yaml:"name"`
	Age          string   `json:"age" yaml:"age"`
	Nickname     string   `json:"nickname" yaml:"nickname"`
	Health       []string `json:"health" yaml:"health"`
	RoutineNotes []string `json:"routineNotes" yaml:"routine_notes"`
}
