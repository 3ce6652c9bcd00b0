// Kampus is the command line front end to the Kampus school administration
// API: it logs in, lists students, drives report generation and keeps a
// local history of the report runs.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kampushq/kampus/core"
	emailsvc "github.com/kampushq/kampus/services/email"
	"github.com/kampushq/kampus/services/kampusapi"
	logsvc "github.com/kampushq/kampus/services/logger"
	"github.com/kampushq/kampus/storage/prefs"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	var logger core.Logger
	std := log.New(os.Stderr, "", 0)
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator(_en.Locale())
	core.InitValidators(validate, translator)

	store, err := prefs.Open(conf.PrefsPath)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening prefs store: %v", err), err)
	}

	cli := commandLine{
		conf:     conf,
		logger:   logger,
		client:   kampusapi.NewClient(conf, logger),
		prefs:    store,
		mailSvc:  mailSvc,
		validate: validate,
		out:      os.Stdout,
	}
	cli.restoreSession()

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
