package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/report"
	"github.com/trezcool/masomo/core/school"
	emailsvc "github.com/trezcool/masomo/services/email"
	logsvc "github.com/trezcool/masomo/services/logger"
	"github.com/trezcool/masomo/services/notify"
	"github.com/trezcool/masomo/storage/database"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug)
	return logger
}

func newStorage(conf *core.Config, loggerParam DBLoggerParam) school.Storage {
	store, err := database.OpenStorage(conf)
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	return store
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, os.Stdout)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newNotifier(conf *core.Config, mailSvc core.EmailService, logger core.Logger) (report.Notifier, error) {
	return notify.New(conf, os.Stdout, mailSvc, logger)
}

func newSchool(conf *core.Config, store school.Storage, notifier report.Notifier) (*school.School, error) {
	sch := school.New(school.Options{
		Name:     conf.SchoolName,
		Notifier: notifier,
		Storage:  store,
	})
	if err := sch.Load(context.Background()); err != nil {
		return nil, errors.Wrap(err, "loading school")
	}
	return sch, nil
}

func newServer(conf *core.Config, sch *school.School, logger core.Logger) *echoapi.Server {
	return echoapi.NewServer(echoapi.Options{
		Address: conf.Server.Address(),
		Debug:   conf.Debug,
		School:  sch,
		Logger:  logger,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStorage))
	must(c.Provide(newEmailService))
	must(c.Provide(newNotifier))
	must(c.Provide(newSchool))
	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
