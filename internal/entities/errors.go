package entities

import "errors"

type ErrorKind int

const (
	KindFailure ErrorKind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindForbidden
	KindUnauthorized
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "failure"
	}
}

// Error is the result error carried from use cases to the transport layer.
// Two errors are equal under errors.Is when their codes match.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func Forbidden(code, message string) *Error {
	return &Error{Kind: KindForbidden, Code: code, Message: message}
}

func Unauthorized(code, message string) *Error {
	return &Error{Kind: KindUnauthorized, Code: code, Message: message}
}

func Failure(code, message string) *Error {
	return &Error{Kind: KindFailure, Code: code, Message: message}
}

// KindOf reports the kind of err, KindFailure for errors outside the taxonomy.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindFailure
}

var (
	ErrInvalidCredentials = Validation("Auth.InvalidCredentials", "invalid email or password")
	ErrEmailExists        = Conflict("Auth.EmailExists", "email already registered")
	ErrUnauthorized       = Unauthorized("Auth.Unauthorized", "unauthorized")
	ErrForbidden          = Forbidden("Auth.Forbidden", "forbidden")

	ErrUserNotFound = NotFound("User.NotFound", "user not found")

	ErrInvitationNotFound      = NotFound("Invitation.NotFound", "invitation not found")
	ErrInvitationInvalid       = Validation("Invitation.Invalid", "invitation used or expired")
	ErrInvitationEmailMismatch = Validation("Invitation.EmailMismatch", "email does not match invitation")
	ErrInvitationForbidden     = Forbidden("Invitation.Forbidden", "only admins can create invitations")

	ErrProfileNotFound      = NotFound("Profile.NotFound", "profile not found")
	ErrProfileExists        = Conflict("Profile.AlreadyExists", "profile already exists")
	ErrLanguageNotFound     = NotFound("Language.NotFound", "language not found")
	ErrLanguageExists       = Conflict("Language.AlreadyExists", "language already added")
	ErrExperienceNotFound   = NotFound("WorkExperience.NotFound", "work experience not found")
	ErrInterestNotFound     = NotFound("Interest.NotFound", "interest not found")
	ErrInterestExists       = Conflict("Interest.AlreadyExists", "interest already added")
	ErrEmployeeTechNotFound = NotFound("EmployeeTechnology.NotFound", "employee technology not found")
	ErrEmployeeTechExists   = Conflict("EmployeeTechnology.AlreadyExists", "technology already added")
	ErrEmployeeRoleNotFound = NotFound("EmployeeRole.NotFound", "specialized role not assigned")
	ErrEmployeeRoleExists   = Conflict("EmployeeRole.AlreadyExists", "specialized role already added")

	ErrTechnologyNotFound = NotFound("Technology.NotFound", "technology not found")
	ErrTechnologyExists   = Conflict("Technology.AlreadyExists", "technology already exists")
	ErrCategoryNotFound   = NotFound("Category.NotFound", "category not found")
	ErrRoleNotFound       = NotFound("SpecializedRole.NotFound", "specialized role not found")

	ErrVerificationAlreadyVerified  = Conflict("Verification.AlreadyVerified", "profile already verified")
	ErrVerificationAlreadyRequested = Conflict("Verification.AlreadyRequested", "verification already requested")
	ErrVerificationInvalidStatus    = Validation("Verification.InvalidStatus", "profile is not pending verification")
	ErrVerificationNotFound         = NotFound("Verification.NotFound", "verification not found")

	ErrTeamNotFound       = NotFound("Team.NotFound", "team not found")
	ErrTeamMemberNotFound = NotFound("Team.MemberNotFound", "member not in team")
	ErrTeamMemberExists   = Conflict("Team.MemberExists", "member already in team")

	ErrAIService         = Failure("AI.ServiceError", "ai service error")
	ErrAIInvalidResponse = Failure("AI.InvalidResponse", "invalid response from ai service")

	ErrConsentNotFound  = NotFound("Privacy.ConsentNotFound", "consent not recorded")
	ErrDeletionPending  = Conflict("Privacy.DeletionPending", "a deletion request is already pending")
	ErrDeletionNotFound = NotFound("Privacy.DeletionNotFound", "deletion request not found")
	ErrDeletionNotOwned = Forbidden("Privacy.DeletionNotOwned", "deletion request belongs to another user")
	ErrDeletionState    = Conflict("Privacy.DeletionNotPending", "deletion request is not pending")
)
