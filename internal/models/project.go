package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectStatusHearing   ProjectStatus = "hearing"
	ProjectStatusConcept   ProjectStatus = "concept"
	ProjectStatusWireframe ProjectStatus = "wireframe"
	ProjectStatusDesign    ProjectStatus = "design"
	ProjectStatusDelivery  ProjectStatus = "delivery"
)

func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusHearing, ProjectStatusConcept, ProjectStatusWireframe,
		ProjectStatusDesign, ProjectStatusDelivery:
		return true
	}
	return false
}

type Project struct {
	ID               uuid.UUID
	ClientID         uuid.UUID
	Title            string
	Status           ProjectStatus
	IsPaymentPending bool
	CreatedAt        time.Time
}
