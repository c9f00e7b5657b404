package models

// TemplateHabit is one habit a template creates.
type TemplateHabit struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HabitTemplate bundles related habits that can be added in one step.
type HabitTemplate struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	Habits      []TemplateHabit `json:"habits"`
}
