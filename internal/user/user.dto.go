package user

type SyncUserRequest struct {
	FirebaseUID string `json:"firebaseUid" validate:"required"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Image       string `json:"image,omitempty"`
}

type SyncUserResponse struct {
	ID          string `json:"id"`
	FirebaseUID string `json:"firebaseUid"`
	Email       string `json:"email,omitempty"`
	Name        string `json:"name,omitempty"`
	Image       string `json:"image,omitempty"`
}
