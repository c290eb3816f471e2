package access

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Resources and actions gated by the role policy. Row-level visibility is
// handled separately by the scopes in scope.go; the enforcer only answers
// "may this role perform this action at all".
const (
	ResourceProject      = "project"
	ResourceTask         = "task"
	ResourceLeave        = "leave"
	ResourceEmployee     = "employee"
	ResourceClient       = "client"
	ResourceInvoice      = "invoice"
	ResourceDocument     = "document"
	ResourceProfile      = "profile"
	ResourceNotification = "notification"
	ResourceDashboard    = "dashboard"

	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionComment = "comment"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

// policyRows is the fixed role/resource/action matrix. Roles are a closed
// enum, so the policy ships with the binary instead of living in a table.
var policyRows = [][]string{
	// hr: full HR surface, read-mostly elsewhere
	{string(RoleHR), ResourceProject, ActionRead},
	{string(RoleHR), ResourceTask, ActionRead},
	{string(RoleHR), ResourceLeave, ActionRead},
	{string(RoleHR), ResourceLeave, ActionCreate},
	{string(RoleHR), ResourceLeave, ActionApprove},
	{string(RoleHR), ResourceEmployee, ActionRead},
	{string(RoleHR), ResourceEmployee, ActionCreate},
	{string(RoleHR), ResourceEmployee, ActionUpdate},
	{string(RoleHR), ResourceEmployee, ActionDelete},
	{string(RoleHR), ResourceClient, ActionRead},
	{string(RoleHR), ResourceClient, ActionCreate},
	{string(RoleHR), ResourceClient, ActionUpdate},
	{string(RoleHR), ResourceInvoice, ActionRead},
	{string(RoleHR), ResourceInvoice, ActionCreate},
	{string(RoleHR), ResourceInvoice, ActionUpdate},
	{string(RoleHR), ResourceDocument, ActionRead},
	{string(RoleHR), ResourceDocument, ActionCreate},
	{string(RoleHR), ResourceDocument, ActionDelete},
	{string(RoleHR), ResourceProfile, ActionRead},
	{string(RoleHR), ResourceProfile, ActionUpdate},
	{string(RoleHR), ResourceNotification, ActionRead},
	{string(RoleHR), ResourceDashboard, ActionRead},

	// team: project work plus own leave requests
	{string(RoleTeam), ResourceProject, ActionRead},
	{string(RoleTeam), ResourceProject, ActionUpdate},
	{string(RoleTeam), ResourceTask, ActionRead},
	{string(RoleTeam), ResourceTask, ActionCreate},
	{string(RoleTeam), ResourceTask, ActionUpdate},
	{string(RoleTeam), ResourceTask, ActionComment},
	{string(RoleTeam), ResourceLeave, ActionRead},
	{string(RoleTeam), ResourceLeave, ActionCreate},
	{string(RoleTeam), ResourceDocument, ActionRead},
	{string(RoleTeam), ResourceDocument, ActionCreate},
	{string(RoleTeam), ResourceDocument, ActionDelete},
	{string(RoleTeam), ResourceProfile, ActionRead},
	{string(RoleTeam), ResourceNotification, ActionRead},
	{string(RoleTeam), ResourceDashboard, ActionRead},

	// client: read-only over their company's rows
	{string(RoleClient), ResourceProject, ActionRead},
	{string(RoleClient), ResourceTask, ActionRead},
	{string(RoleClient), ResourceInvoice, ActionRead},
	{string(RoleClient), ResourceDocument, ActionRead},
	{string(RoleClient), ResourceProfile, ActionRead},
	{string(RoleClient), ResourceNotification, ActionRead},
	{string(RoleClient), ResourceDashboard, ActionRead},
}

var adminResources = []string{
	ResourceProject, ResourceTask, ResourceLeave, ResourceEmployee,
	ResourceClient, ResourceInvoice, ResourceDocument, ResourceProfile,
	ResourceNotification, ResourceDashboard,
}

var adminActions = []string{
	ActionRead, ActionCreate, ActionUpdate, ActionDelete, ActionApprove, ActionComment,
}

// NewEnforcer builds a casbin enforcer preloaded with the static policy.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, res := range adminResources {
		for _, act := range adminActions {
			if _, err := e.AddPolicy(string(RoleAdmin), res, act); err != nil {
				return nil, err
			}
		}
	}
	for _, row := range policyRows {
		if _, err := e.AddPolicy(row[0], row[1], row[2]); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// Enforcer answers action-level authorization questions for a role.
type Enforcer interface {
	Allowed(role Role, resource, action string) (bool, error)
}

type enforcer struct {
	e *casbin.Enforcer
}

func NewPolicy() (Enforcer, error) {
	e, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	return &enforcer{e: e}, nil
}

func (p *enforcer) Allowed(role Role, resource, action string) (bool, error) {
	if !role.Valid() {
		return false, nil
	}
	return p.e.Enforce(string(role), resource, action)
}
