package main

import (
	"fmt"
	"time"

	echoapi "github.com/kelasdev/kelas/apps/api/echo"
)

// token prints a signed API token, for local development and support.
func (cli *commandLine) token(identity, email, name string, admin bool, ttl time.Duration) error {
	var role string
	if admin {
		role = echoapi.RoleAdmin
	}
	claims := echoapi.NewClaims(cli.conf, identity, email, name, role, ttl)
	token, err := echoapi.GenerateToken(cli.conf, claims)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cli.out, token)
	return nil
}
