package main

import (
	"context"
	"fmt"
	"log"
	"os"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	emailsvc "github.com/trezcool/masomo/services/email"
	logsvc "github.com/trezcool/masomo/services/logger"
	"github.com/trezcool/masomo/services/notify"
	"github.com/trezcool/masomo/storage/database"
)

func startManual() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up storage
	store, err := database.OpenStorage(conf)
	if err != nil {
		dbLogger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, os.Stdout)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	notifier, err := notify.New(conf, os.Stdout, mailSvc, logger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up notifier: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	sch := school.New(school.Options{
		Name:     conf.SchoolName,
		Notifier: notifier,
		Storage:  store,
	})
	if err = sch.Load(context.Background()); err != nil {
		dbLogger.Fatal(fmt.Sprintf("loading school: %v", err), err)
	}

	server := echoapi.NewServer(echoapi.Options{
		Address: conf.Server.Address(),
		Debug:   conf.Debug,
		School:  sch,
		Logger:  logger,
	})

	serve(conf, logger, store, server)
}
