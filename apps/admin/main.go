package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	emailsvc "github.com/trezcool/masomo/services/email"
	logsvc "github.com/trezcool/masomo/services/logger"
	"github.com/trezcool/masomo/services/notify"
	"github.com/trezcool/masomo/storage/database"
)

var logger *logsvc.RollbarLogger

func main() {
	conf := core.NewConfig()

	logger = logsvc.NewRollbarLogger(
		log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	cli := commandLine{
		engine: conf.Database.Engine,
		in:     os.Stdin,
		out:    os.Stdout,
	}

	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		// migrations only need the raw connection
		if conf.Database.Engine == core.EngineSQLite || conf.Database.Engine == core.EnginePostgres {
			db, err := database.Open(conf)
			errAndDie(err)
			defer db.Close()
			cli.db = db
		}
	} else {
		store, err := database.OpenStorage(conf)
		errAndDie(err)
		defer store.Close()

		var mailSvc core.EmailService
		if conf.Debug {
			mailSvc = emailsvc.NewConsoleService(conf, os.Stdout)
		} else {
			mailSvc = emailsvc.NewSendgridService(conf, logger)
		}
		notifier, err := notify.New(conf, os.Stdout, mailSvc, logger)
		errAndDie(err)

		cli.sch = school.New(school.Options{
			Name:     conf.SchoolName,
			Notifier: notifier,
			Storage:  store,
		})
		errAndDie(cli.sch.Load(context.Background()))
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			_, _ = fmt.Fprintf(os.Stderr, "\nerror: %s\n", errorMessage(err))
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
