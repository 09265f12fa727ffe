package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"tutochat/chat-api/internal"
	"tutochat/chat-api/internal/model"
	"tutochat/chat-api/pkg/middleware"
	"tutochat/chat-api/pkg/security"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type mockMailer struct {
	sendFunc  func(token, sendTo string) error
	calls     int
	lastToken string
	lastTo    string
}

func (m *mockMailer) SendValidationMail(token, sendTo string) error {
	m.calls++
	m.lastToken = token
	m.lastTo = sendTo

	if m.sendFunc != nil {
		return m.sendFunc(token, sendTo)
	}
	return nil
}

func newTestDeps(t *testing.T) (*internal.Deps, *mockMailer) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(model.User{}, model.Message{}, model.ValidationToken{}))

	mailer := &mockMailer{}

	return &internal.Deps{
		DB:     db,
		Argon:  security.New(),
		Mailer: mailer,
	}, mailer
}

func newTestRouter(d *internal.Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	viper.Set("session.secret", "test-secret")

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("requestID", "test")
		c.Next()
	}, middleware.NewSessionMiddleware())

	r.POST("/register", func(c *gin.Context) { UserRegister(c, d) })
	r.GET("/validate/:token", func(c *gin.Context) { UserValidate(c, d) })
	r.POST("/login", func(c *gin.Context) { UserLogin(c, d) })
	r.GET("/logout", UserLogout)
	r.GET("/me", UserMe)

	return r
}

func doJSON(r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie {
			return ck
		}
	}
	return nil
}
