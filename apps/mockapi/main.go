// Mockapi is a self-contained stand-in for the Kampus back end. It serves the
// same endpoints the kampus CLI talks to, against seeded in-memory data, so
// the client side can be exercised without a real deployment.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/kampushq/kampus/core"
	logsvc "github.com/kampushq/kampus/services/logger"
)

func main() {
	conf := core.NewConfig()

	var logger core.Logger
	std := log.New(os.Stdout, "MOCKAPI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	if conf.Debug {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	logger.Info(fmt.Sprintf("Mock API initializing : version %q", conf.Build))

	srv := newServer(serverDeps{
		conf:       conf,
		logger:     logger,
		store:      newStore(),
		validate:   validate,
		translator: translator,
	})
	srv.Start()
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator(_en.Locale())
	return translator
}
