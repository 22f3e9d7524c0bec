package domain

import "time"

type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "admin"
	MemberRoleLibrarian MemberRole = "librarian"
	MemberRoleMember    MemberRole = "member"
)

type LoanClass string

const (
	LoanClassStandard LoanClass = "standard"
	LoanClassExtended LoanClass = "extended"
)

type Member struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         MemberRole `json:"role"`
	LoanClass    LoanClass  `json:"loan_class"`
	IsActive     bool       `json:"is_active"`
	CreatedOn    time.Time  `json:"created_on"`
}

// Elevated reports whether the member may act on loans they do not hold
// (return on behalf of a borrower, issue, mark incidents, manage the catalog).
func (m *Member) Elevated() bool {
	return m.Role == MemberRoleAdmin || m.Role == MemberRoleLibrarian
}
