package auth

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleHR       = "hr"
	RoleAdmin    = "admin"
)

// IsHRTier reports whether the role may perform HR-gated appraisal
// operations (publish, dispute resolution, cycle administration).
func IsHRTier(role string) bool {
	return role == RoleHR || role == RoleAdmin
}

const (
	PermDirectoryRead    = "directory.read"
	PermDirectoryWrite   = "directory.write"
	PermTemplatesRead    = "appraisal.templates.read"
	PermTemplatesWrite   = "appraisal.templates.write"
	PermCyclesRead       = "appraisal.cycles.read"
	PermCyclesWrite      = "appraisal.cycles.write"
	PermAssignmentsRead  = "appraisal.assignments.read"
	PermAssignmentsWrite = "appraisal.assignments.write"
	PermRecordsRead      = "appraisal.records.read"
	PermRecordsWrite     = "appraisal.records.write"
	PermRecordsPublish   = "appraisal.records.publish"
	PermDisputesRead     = "appraisal.disputes.read"
	PermDisputesWrite    = "appraisal.disputes.write"
	PermDisputesResolve  = "appraisal.disputes.resolve"
	PermReportsRead      = "appraisal.reports.read"
	PermSystemAdmin      = "admin.system"
)

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermDirectoryRead,
		PermTemplatesRead,
		PermCyclesRead,
		PermAssignmentsRead,
		PermRecordsRead,
		PermDisputesRead,
		PermDisputesWrite,
		PermReportsRead,
	},
	RoleManager: {
		PermDirectoryRead,
		PermTemplatesRead,
		PermCyclesRead,
		PermAssignmentsRead,
		PermRecordsRead,
		PermRecordsWrite,
		PermDisputesRead,
		PermReportsRead,
	},
	RoleHR: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermTemplatesRead,
		PermTemplatesWrite,
		PermCyclesRead,
		PermCyclesWrite,
		PermAssignmentsRead,
		PermAssignmentsWrite,
		PermRecordsRead,
		PermRecordsWrite,
		PermRecordsPublish,
		PermDisputesRead,
		PermDisputesWrite,
		PermDisputesResolve,
		PermReportsRead,
	},
	RoleAdmin: {
		PermSystemAdmin,
	},
}

// HasPermission checks the static role/permission table. Admin passes every
// check via the system permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission || p == PermSystemAdmin {
			return true
		}
	}
	return false
}
