package repository

// Repository is the full persistence surface, implemented by the postgres package.
type Repository interface {
	UserRepository
	InvitationRepository
	ProfileRepository
	CatalogRepository
	VerificationRepository
	TeamRepository
	PrivacyRepository
}
