package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/kampushq/kampus/core"
	"github.com/kampushq/kampus/core/report"
	"github.com/kampushq/kampus/core/student"
	"github.com/kampushq/kampus/core/user"
)

const (
	contextTokenKey = "userToken"
	tokenDelta      = 8 * time.Hour
)

var (
	errAuthenticationFailed = echo.NewHTTPError(http.StatusBadRequest, "authentication failed")
	errHTTPNotFound         = echo.NewHTTPError(http.StatusNotFound, "not found")
	errArtifactNotReady     = echo.NewHTTPError(http.StatusConflict, "report artifact is not ready")
)

type serverDeps struct {
	conf           *core.Config
	logger         core.Logger
	store          *store
	validate       *validator.Validate
	translator     ut.Translator
	disableReqLogs bool
}

type server struct {
	serverDeps
	app *echo.Echo
}

func newServer(deps serverDeps) *server {
	s := &server{
		serverDeps: deps,
		app:        echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.disableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.HTTPErrorHandler = s.httpErrorHandler
	s.app.Debug = s.conf.Debug
	s.app.HideBanner = true

	v1 := s.app.Group("/v1")
	jwtMW := middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey:    []byte(s.conf.Server.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        &user.Claims{},
	})

	v1.POST("/users/login", s.login)
	v1.POST("/users/token-refresh", s.refreshToken, jwtMW)

	rg := v1.Group("/report-jobs", jwtMW)
	rg.POST("", s.createReportJob)
	rg.GET("/:id", s.getReportJob)
	rg.GET("/:id/download", s.downloadArtifact)

	sg := v1.Group("/students", jwtMW)
	sg.GET("", s.filterStudents)
	sg.GET("/:id", s.getStudent)

	v1.GET("/notifications/unread-count", s.unreadCount, jwtMW)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.conf.Server.Addr))
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *server) httpErrorHandler(err error, ctx echo.Context) {
	var code int
	var message interface{}

	switch origErr := errors.Cause(err).(type) {
	case *echo.HTTPError:
		code = origErr.Code
		message = origErr.Message
	case validator.ValidationErrors:
		fldErrs := make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fldErrs[vErr.Field()] = vErr.Translate(s.translator)
		}
		code = http.StatusBadRequest
		message = fldErrs
	case *core.ValidationError:
		if origErr.Fields != nil {
			fldErrs := make(map[string]string, len(origErr.Fields))
			for _, fErr := range origErr.Fields {
				fldErrs[fErr.Field] = fErr.Error
			}
			message = fldErrs
		} else {
			message = origErr.Error()
		}
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
		message = http.StatusText(code)
		s.logger.Error(http.StatusText(code), err)
	}

	if !ctx.Response().Committed {
		_ = ctx.JSON(code, echo.Map{"error": message})
	}
}

// auth

func (s *server) generateToken(usr user.User) (string, error) {
	now := time.Now().UTC()
	claims := user.Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.Itoa(usr.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(tokenDelta).Unix(),
		},
		OrigIssuedAt: now.Unix(),
		Username:     usr.Username,
		Email:        usr.Email,
		Roles:        usr.Roles,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.conf.Server.SecretKey))
}

func (s *server) contextClaims(ctx echo.Context) (*user.Claims, error) {
	token, ok := ctx.Get(contextTokenKey).(*jwt.Token)
	if !ok {
		return nil, errors.New("token not found in echo.Context")
	}
	claims, ok := token.Claims.(*user.Claims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}
	return claims, nil
}

func (s *server) login(ctx echo.Context) error {
	var data struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding login request")
	}
	if err := s.validate.Struct(data); err != nil {
		return err
	}

	usr, ok := s.store.authenticate(data.Username, data.Password)
	if !ok {
		return errAuthenticationFailed
	}
	token, err := s.generateToken(usr)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token})
}

func (s *server) refreshToken(ctx echo.Context) error {
	claims, err := s.contextClaims(ctx)
	if err != nil {
		return err
	}
	token, err := s.generateToken(user.Session{Claims: *claims}.User())
	if err != nil {
		return errors.Wrap(err, "generating token")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"token": token})
}

// report jobs

func (s *server) createReportJob(ctx echo.Context) error {
	var data struct {
		Kind         string `json:"kind"`
		GroupID      int    `json:"group_id"`
		PeriodID     int    `json:"period_id"`
		YearID       int    `json:"year_id"`
		EnrollmentID int    `json:"enrollment_id"`
	}
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding report job request")
	}

	var req interface{ Validate(*validator.Validate) error }
	var outputFilename string
	switch data.Kind {
	case report.KindEnrollmentList:
		req = report.EnrollmentListRequest{GroupID: data.GroupID, PeriodID: data.PeriodID, YearID: data.YearID}
		outputFilename = "listado-g" + strconv.Itoa(data.GroupID) + ".pdf"
	case report.KindGroupBulletin:
		req = report.GroupBulletinRequest{GroupID: data.GroupID, PeriodID: data.PeriodID}
		outputFilename = "boletín-g" + strconv.Itoa(data.GroupID) + "-p" + strconv.Itoa(data.PeriodID) + ".pdf"
	case report.KindStudentBulletin:
		req = report.StudentBulletinRequest{EnrollmentID: data.EnrollmentID, PeriodID: data.PeriodID}
		outputFilename = "boletín-e" + strconv.Itoa(data.EnrollmentID) + ".pdf"
	default:
		return core.NewValidationError(nil, core.FieldError{Field: "kind", Error: "unknown report kind"})
	}
	if err := req.Validate(s.validate); err != nil {
		return err
	}

	job := s.store.createJob(data.PeriodID, outputFilename)
	return ctx.JSON(http.StatusCreated, job)
}

func (s *server) getReportJob(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	job, ok := s.store.getJob(id)
	if !ok {
		return errHTTPNotFound
	}
	return ctx.JSON(http.StatusOK, job)
}

func (s *server) downloadArtifact(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	job, ok := s.store.getJob(id)
	if !ok {
		return errHTTPNotFound
	}
	if job.Status != report.StatusSucceeded {
		return errArtifactNotReady
	}

	data, dispositionName := s.store.artifact(job)
	ctx.Response().Header().Set("Content-Disposition", `attachment; filename="`+dispositionName+`"`)
	return ctx.Blob(http.StatusOK, "application/pdf", data)
}

// students

func (s *server) filterStudents(ctx echo.Context) error {
	var filter student.QueryFilter
	if err := ctx.Bind(&filter); err != nil {
		return errors.Wrap(err, "binding student filter")
	}
	return ctx.JSON(http.StatusOK, s.store.filterStudents(filter))
}

func (s *server) getStudent(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHTTPNotFound
	}
	st, ok := s.store.getStudent(id)
	if !ok {
		return errHTTPNotFound
	}
	return ctx.JSON(http.StatusOK, st)
}

// notifications

func (s *server) unreadCount(ctx echo.Context) error {
	claims, err := s.contextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"count": s.store.unreadCount(claims.Username)})
}
