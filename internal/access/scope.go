package access

import "gorm.io/gorm"

// Listing scopes apply the role-based visibility predicate at the query
// layer. Every listing repo composes one of these; rows are never fetched
// unfiltered and narrowed in memory.

// DenyAll matches no rows. Used for unrecognized roles and for client
// callers without a company linkage.
func DenyAll() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("1 = 0")
	}
}

// Unscoped passes the query through unchanged (admin/hr listings).
func Unscoped() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db
	}
}

// ProjectScope restricts a projects query to what the caller may see:
// staff see everything, team members see projects they belong to, clients
// see their own company's projects.
func ProjectScope(caller Caller) func(db *gorm.DB) *gorm.DB {
	switch caller.Role {
	case RoleAdmin, RoleHR:
		return Unscoped()
	case RoleTeam:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"EXISTS (SELECT 1 FROM project_members pm WHERE pm.project_id = projects.id AND pm.user_id = ?)",
				caller.ID,
			)
		}
	case RoleClient:
		companyID, ok := caller.CompanyID()
		if !ok {
			return DenyAll()
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("projects.client_company_id = ?", companyID)
		}
	default:
		return DenyAll()
	}
}

// TaskScope restricts a tasks query. Team members see tasks assigned to
// them or unassigned ones; clients see tasks of their company's projects.
func TaskScope(caller Caller) func(db *gorm.DB) *gorm.DB {
	switch caller.Role {
	case RoleAdmin, RoleHR:
		return Unscoped()
	case RoleTeam:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("tasks.assignee_id = ? OR tasks.assignee_id IS NULL", caller.ID)
		}
	case RoleClient:
		companyID, ok := caller.CompanyID()
		if !ok {
			return DenyAll()
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"tasks.project_id IN (SELECT id FROM projects WHERE client_company_id = ?)",
				companyID,
			)
		}
	default:
		return DenyAll()
	}
}

// LeaveScope restricts leave request listings: staff see everything, every
// other role sees only their own requests.
func LeaveScope(caller Caller) func(db *gorm.DB) *gorm.DB {
	if caller.Role.IsStaff() {
		return Unscoped()
	}
	if !caller.Role.Valid() {
		return DenyAll()
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("leave_requests.user_id = ?", caller.ID)
	}
}

// DocumentScope restricts project documents to the caller's project
// visibility.
func DocumentScope(caller Caller) func(db *gorm.DB) *gorm.DB {
	switch caller.Role {
	case RoleAdmin, RoleHR:
		return Unscoped()
	case RoleTeam:
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"documents.project_id IN (SELECT project_id FROM project_members WHERE user_id = ?)",
				caller.ID,
			)
		}
	case RoleClient:
		companyID, ok := caller.CompanyID()
		if !ok {
			return DenyAll()
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(
				"documents.project_id IN (SELECT id FROM projects WHERE client_company_id = ?)",
				companyID,
			)
		}
	default:
		return DenyAll()
	}
}

// InvoiceScope restricts invoices: staff unfiltered, clients company-scoped,
// everyone else denied.
func InvoiceScope(caller Caller) func(db *gorm.DB) *gorm.DB {
	switch caller.Role {
	case RoleAdmin, RoleHR:
		return Unscoped()
	case RoleClient:
		companyID, ok := caller.CompanyID()
		if !ok {
			return DenyAll()
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("invoices.client_company_id = ?", companyID)
		}
	default:
		return DenyAll()
	}
}
