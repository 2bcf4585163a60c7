package main

import "github.com/trezcool/academia/storage/database"

var (
	defaultGooseRunFunc = database.Run
	gooseRunFunc        = defaultGooseRunFunc // mockable
)

func (cli *commandLine) migrate(args []string) error {
	return gooseRunFunc(args[0], cli.db, args[1:]...)
}
