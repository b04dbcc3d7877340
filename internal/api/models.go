package api

// Common request/response structures. User records and update patches
// travel in their domain shape (domain.UserRecord, domain.UserPatch):
// the read and write representations are symmetric, so no separate
// transport models are needed for them.

// MessageResponse is the body of the running indicator and the delete
// confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}
