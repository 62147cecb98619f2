package types

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Tag submission status values
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Valid values for validation
var ValidRoles = []string{RoleUser, RoleAdmin}

var ValidSubmissionStatuses = []string{
	SubmissionPending, SubmissionApproved, SubmissionRejected,
}

// Helper functions for validation
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidSubmissionStatus(status string) bool {
	for _, s := range ValidSubmissionStatuses {
		if s == status {
			return true
		}
	}
	return false
}
