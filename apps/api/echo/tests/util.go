package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/coderDevDev/senior-cetizen-app-sub000/apps/api/echo"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/class"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/module"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/registry"
	"github.com/coderDevDev/senior-cetizen-app-sub000/core/user"
	emailsvc "github.com/coderDevDev/senior-cetizen-app-sub000/services/email"
	dummydb "github.com/coderDevDev/senior-cetizen-app-sub000/storage/database/dummy"
)

var (
	usrRepo    user.Repository
	moduleRepo module.Repository
	seniorRepo registry.Repository

	catRepo interface {
		module.CategoryRepository
		AddCategory(cat module.Category) module.Category
	}
	classRepo interface {
		class.Repository
		AddClass(cls class.Class) class.Class
	}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errPermDenied   = httpErr{Error: "permission denied"}
	errNotFound     = httpErr{Error: "not found"}
)

func init() {
	// tests run from this package's directory; point assets back at the
	// repository root and keep error responses in their production shape.
	core.Conf.WorkDir = filepath.Join("..", "..", "..", "..")
	core.Conf.Debug = false
	core.Conf.TestMode = true

	user.LoadCommonPasswords(nopLogger{})
	core.ParseEmailTemplates(nopLogger{})
}

func setup(t *testing.T) *Server {
	// set up DB & repos
	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("dummydb.Open(): %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)
	moduleRepo = dummydb.NewModuleRepository(db)
	catRepo = dummydb.NewCategoryRepository(db)
	progRepo := dummydb.NewProgressRepository(db)
	seniorRepo = dummydb.NewSeniorRepository(db)
	classRepo = dummydb.NewClassRepository(db)

	// set up services
	logger := nopLogger{}
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewServiceMock(usrRepo, mailSvc, logger)
	classSvc := class.NewService(classRepo)
	moduleSvc := module.NewService(moduleRepo, catRepo, progRepo, classSvc, logger)
	registrySvc := registry.NewService(seniorRepo, mailSvc, logger)

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	registry.InitValidators(validate, translator)

	// set up server
	return NewServer(ServerDeps{
		Logger:         logger,
		UserSvc:        usrSvc,
		ModuleSvc:      moduleSvc,
		RegistrySvc:    registrySvc,
		ClassSvc:       classSvc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

// nolint
func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
