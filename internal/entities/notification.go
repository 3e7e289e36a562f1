package entities

import "github.com/google/uuid"

type NotificationType string

const (
	NotifyTeamMemberAdded   NotificationType = "TeamMemberAdded"
	NotifyTeamMemberRemoved NotificationType = "TeamMemberRemoved"
	NotifyTeamMemberMoved   NotificationType = "TeamMemberMoved"
	NotifyTeamDeleted       NotificationType = "TeamDeleted"
	NotifyProfileApproved   NotificationType = "ProfileApproved"
	NotifyProfileRejected   NotificationType = "ProfileRejected"
)

type Notification struct {
	Type              NotificationType
	EmployeeProfileID uuid.UUID
	TeamID            uuid.UUID
	TeamName          string
	TargetTeamName    string
	Notes             string
}
