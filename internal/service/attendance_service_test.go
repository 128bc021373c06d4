package service

import "testing"

func TestValidAttendanceStatus(t *testing.T) {
	valid := []string{"present", "absent", "late", "excused"}
	for _, status := range valid {
		if !ValidAttendanceStatus(status) {
			t.Errorf("%q should be valid", status)
		}
	}

	invalid := []string{"", "Present", "missing", "tardy"}
	for _, status := range invalid {
		if ValidAttendanceStatus(status) {
			t.Errorf("%q should be invalid", status)
		}
	}
}
