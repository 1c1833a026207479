package main

import (
	"log"

	"github.com/pressly/goose/v3"

	"github.com/trezcool/masomo/storage/database"
)

var gooseRunFunc = goose.Run // mockable

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoSQLDatabase
	}
	dir, err := database.MigrationsDir(cli.engine)
	if err != nil {
		return err
	}
	goose.SetLogger(log.New(cli.out, "", 0))

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db.DB, dir, arguments...)
}
