package main

import (
	"context"
	"errors"

	"github.com/kelasdev/kelas/storage/database"
)

var gooseRunFunc = database.RunMigrations // mockable

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	if cli.store.SQL == nil {
		return errors.New("migrations require a SQL database engine")
	}
	return gooseRunFunc(ctx, cli.store.SQL, args[0], args[1:]...)
}
