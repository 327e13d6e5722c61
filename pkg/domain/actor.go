package domain

// Actor is the engine's view of the acting user: identity, display name, and
// role. The engine never sees credentials; authentication happens upstream
// and the verified actor travels through the request context.
type Actor struct {
	ID   UserID `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// IsAuthenticated reports whether the actor carries a real identity.
func (a Actor) IsAuthenticated() bool {
	return !a.ID.IsNil()
}
