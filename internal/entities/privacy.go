package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ConsentVersion         = "1.0"
	DeletionGracePeriod    = 30 * 24 * time.Hour
	CancelledByUserMessage = "Cancelled by user"
)

type PrivacyConsent struct {
	UserID               uuid.UUID
	TeamMatchingAnalysis bool
	Version              string
	LastUpdated          time.Time
}

type DeletionStatus string

const (
	DeletionPending    DeletionStatus = "Pending"
	DeletionProcessing DeletionStatus = "Processing"
	DeletionCompleted  DeletionStatus = "Completed"
	DeletionCancelled  DeletionStatus = "Cancelled"
	DeletionFailed     DeletionStatus = "Failed"
)

type DataType string

const (
	DataProfile      DataType = "PROFILE"
	DataTechnologies DataType = "TECHNOLOGIES"
	DataExperiences  DataType = "EXPERIENCES"
	DataInterests    DataType = "INTERESTS"
	DataLanguages    DataType = "LANGUAGES"
	DataAll          DataType = "ALL"
)

var resettableData = []DataType{DataProfile, DataTechnologies, DataExperiences, DataInterests, DataLanguages}

func (d DataType) Valid() bool {
	if d == DataAll {
		return true
	}
	for _, v := range resettableData {
		if v == d {
			return true
		}
	}
	return false
}

// ExpandDataTypes resolves ALL and removes duplicates, keeping a stable order.
func ExpandDataTypes(types []DataType) []DataType {
	seen := make(map[DataType]bool, len(types))
	for _, t := range types {
		if t == DataAll {
			return append([]DataType(nil), resettableData...)
		}
		seen[t] = true
	}
	out := make([]DataType, 0, len(seen))
	for _, t := range resettableData {
		if seen[t] {
			out = append(out, t)
		}
	}
	return out
}

type DataDeletionOrder struct {
	ID                    uuid.UUID
	UserID                uuid.UUID
	Status                DeletionStatus
	RequestDate           time.Time
	ScheduledDeletionDate time.Time
	ProcessedDate         *time.Time
	DataTypes             []DataType
	Reason                string
	CancellationReason    string
}

type AuditAction string

const (
	AuditConsentUpdated        AuditAction = "ConsentUpdated"
	AuditConsentWithdrawn      AuditAction = "ConsentWithdrawn"
	AuditDataExported          AuditAction = "DataExported"
	AuditDataDeletionRequested AuditAction = "DataDeletionRequested"
	AuditDataDeletionCancelled AuditAction = "DataDeletionCancelled"
	AuditDataDeleted           AuditAction = "DataDeleted"
)

type PrivacyAuditLog struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    AuditAction
	Details   string
	IPAddress string
	UserAgent string
	Timestamp time.Time
}

// RequestMeta identifies the client a privacy action came from.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type DataExport struct {
	User             UserInfo
	Profile          *CompleteProfile
	Teams            []Team
	Consent          PrivacyConsent
	DeletionRequests []DataDeletionOrder
	AuditLog         []PrivacyAuditLog
	ExportedAt       time.Time
}
