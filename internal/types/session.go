package types

// Session is the canonical signed-in user record. It is produced by
// normalizing the heterogeneous user shapes the auth endpoints return and
// is the only user representation the rest of the client sees.
type Session struct {
	UserID    string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Token     string `json:"-"`
}
