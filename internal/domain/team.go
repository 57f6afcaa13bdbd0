package domain

import "time"

type Team struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationID"`
	Name           string    `json:"name"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}

type Location struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationID"`
	Name           string    `json:"name"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
