package domain

import "time"

// Organization is the tenant boundary.
type Organization struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Region is a named sub-division of an organization.
type Region struct {
	ID             string
	OrganizationID string
	Name           string
	CreatedAt      time.Time
}
