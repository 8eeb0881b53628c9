package auth

type confirmRequest struct {
	Email string `json:"email"`
}
