package model

// Class is the enrollment record consulted by the quiz access guard. Class
// management itself is handled elsewhere; this core only reads it.
type Class struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Students []string `json:"students"`
}

// HasStudent reports whether the student is enrolled in the class.
func (c *Class) HasStudent(studentID string) bool {
	for _, s := range c.Students {
		if s == studentID {
			return true
		}
	}
	return false
}
