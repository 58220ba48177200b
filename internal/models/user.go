package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Role string

const (
	RoleAspirant   Role = "aspirant"
	RoleAdmissions Role = "admissions"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAspirant, RoleAdmissions, RoleAdmin:
		return true
	}
	return false
}

// Staff roles may hold a credential and log in.
func (r Role) Staff() bool { return r == RoleAdmissions || r == RoleAdmin }

type User struct {
	ID           string     `json:"id"`
	FullName     string     `json:"fullName"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Role         Role       `json:"role"`
	Credential   string     `json:"-"`
	RegisteredAt time.Time  `json:"registeredAt"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

// Identity is the projection of a user held by a client session.
func (u User) Identity() Identity {
	return Identity{ID: u.ID, FullName: u.FullName, Email: u.Email}
}

// Registration is the public sign-up payload.
type Registration struct {
	FullName   string `json:"fullName" validate:"notblank"`
	Email      string `json:"email" validate:"notblank,addrshape"`
	Phone      string `json:"phone" validate:"notblank"`
	Role       Role   `json:"role" validate:"required,oneof=aspirant admissions admin"`
	Credential string `json:"credential,omitempty"`
}

// UserPatch is a partial update; nil or blank fields are left unchanged.
type UserPatch struct {
	FullName   *string `json:"fullName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Role       *Role   `json:"role,omitempty"`
	Credential *string `json:"credential,omitempty"`
}

func (p UserPatch) Normalize() UserPatch {
	out := UserPatch{
		FullName:   nonBlank(p.FullName),
		Phone:      nonBlank(p.Phone),
		Credential: nonBlank(p.Credential),
	}
	if e := nonBlank(p.Email); e != nil {
		n := NormalizeEmail(*e)
		out.Email = &n
	}
	if p.Role != nil && *p.Role != "" {
		r := *p.Role
		out.Role = &r
	}
	return out
}

// Fields lists present fields. The credential is reported by name only.
func (p UserPatch) Fields() []string {
	var out []string
	if p.FullName != nil {
		out = append(out, "fullName")
	}
	if p.Email != nil {
		out = append(out, "email")
	}
	if p.Phone != nil {
		out = append(out, "phone")
	}
	if p.Role != nil {
		out = append(out, "role")
	}
	if p.Credential != nil {
		out = append(out, "credential")
	}
	return out
}

func (p UserPatch) Apply(u *User) {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Credential != nil {
		u.Credential = *p.Credential
	}
}

// NormalizeEmail is the lookup form of an address.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// Identity is what the client keeps after login. Token is only present
// when the server issues one.
type Identity struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email      string `json:"email"`
	Credential string `json:"credential"`
}
