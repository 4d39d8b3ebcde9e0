package entity

import "slices"

const (
	AuthorityAdmin = "ROLE_ADMIN"
	AuthorityUser  = "ROLE_USER"
)

// Principal is the authenticated caller as described by a verified bearer token.
type Principal struct {
	Subject     string
	Login       string
	Email       *string
	FirstName   *string
	LastName    *string
	ImageURL    *string
	LangKey     *string
	Authorities []string
}

func (p *Principal) HasAuthority(authority string) bool {
	return slices.Contains(p.Authorities, authority)
}

// ToUser projects the principal onto a user row.
func (p *Principal) ToUser() *User {
	login := p.Login
	if login == "" {
		login = p.Subject
	}
	u := NewUser(p.Subject, login)
	u.Email = p.Email
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.ImageURL = p.ImageURL
	u.LangKey = p.LangKey
	return u
}
