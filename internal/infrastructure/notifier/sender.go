package notifier

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Miguelito2774/jala-match-sub001/internal/entities"
	"github.com/Miguelito2774/jala-match-sub001/pkg/logger"
)

type UserLookup interface {
	GetUserByProfile(ctx context.Context, profileID uuid.UUID) (entities.User, error)
}

// LogSender resolves the recipient and writes the message to the log instead of mailing it.
type LogSender struct {
	users  UserLookup
	logger logger.Logger
}

func NewLogSender(users UserLookup, log logger.Logger) *LogSender {
	return &LogSender{users: users, logger: log}
}

func (s *LogSender) Send(ctx context.Context, n entities.Notification) error {
	user, err := s.users.GetUserByProfile(ctx, n.EmployeeProfileID)
	if err != nil {
		return err
	}
	subject, body := Message(n)
	s.logger.Info("notification sent", "to", user.Email, "type", n.Type, "subject", subject, "body", body)
	return nil
}

// Message renders the subject and plain-text body of a notification.
func Message(n entities.Notification) (string, string) {
	switch n.Type {
	case entities.NotifyTeamMemberAdded:
		return "You joined a team", fmt.Sprintf("You have been added to the team %q.", n.TeamName)
	case entities.NotifyTeamMemberRemoved:
		return "You left a team", fmt.Sprintf("You have been removed from the team %q.", n.TeamName)
	case entities.NotifyTeamMemberMoved:
		return "Your team changed", fmt.Sprintf("You have been moved from %q to %q.", n.TeamName, n.TargetTeamName)
	case entities.NotifyTeamDeleted:
		return "Team deleted", fmt.Sprintf("The team %q has been deleted.", n.TeamName)
	case entities.NotifyProfileApproved:
		return "Profile approved", withNotes("Your profile has been verified.", n.Notes)
	case entities.NotifyProfileRejected:
		return "Profile rejected", withNotes("Your profile verification was rejected.", n.Notes)
	default:
		return string(n.Type), ""
	}
}

func withNotes(text, notes string) string {
	if notes == "" {
		return text
	}
	return text + " Notes: " + notes
}
