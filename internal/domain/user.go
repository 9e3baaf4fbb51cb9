package domain

// User is the account a session history belongs to. The backend owns
// credentials; the client only ever sees this public projection.
type User struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
