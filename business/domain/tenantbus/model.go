package tenantbus

// Dependents summarizes what a hard delete of a company removes along
// with it.
type Dependents struct {
	Users      int
	Dashboards int
	Grants     int
}

func (d Dependents) detail() map[string]any {
	return map[string]any{
		"users":      d.Users,
		"dashboards": d.Dashboards,
		"grants":     d.Grants,
	}
}
