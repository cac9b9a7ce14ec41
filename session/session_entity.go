package session

import (
	"context"

	"github.com/fundwit/go-commons/types"
)

const SystemAdminPermission = "system:admin"

type Identity struct {
	ID   types.ID `json:"id"`
	Name string   `json:"name"`
}

type Permissions []string

func (p Permissions) HasRole(role string) bool {
	for _, v := range p {
		if v == role {
			return true
		}
	}
	return false
}

// Session is the per-request caller context. Context carries the request
// context for tracing and cancellation of store operations.
type Session struct {
	Context context.Context `json:"-"`

	Token    string      `json:"token"`
	Identity Identity    `json:"identity"`
	Perms    Permissions `json:"perms"`
}

func (s *Session) Clone() Session {
	c := Session{Context: s.Context, Token: s.Token, Identity: s.Identity}
	c.Perms = append(Permissions{}, s.Perms...)
	return c
}
