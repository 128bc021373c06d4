package service

import "testing"

func TestSetStatusRejectsUnknownValues(t *testing.T) {
	// Validation happens before any repository access, so a zero service
	// is enough here.
	s := &EnrollmentService{}

	for _, status := range []string{"", "dropped", "Active", "ACTIVE"} {
		if _, err := s.SetStatus(1, 1, status); err == nil {
			t.Errorf("SetStatus(%q) should fail", status)
		}
	}
}
