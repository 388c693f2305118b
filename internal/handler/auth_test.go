package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imisi99/Todoapi/internal/model"
	"github.com/imisi99/Todoapi/internal/repository"
	"github.com/imisi99/Todoapi/internal/service"
	"github.com/imisi99/Todoapi/internal/utils"
)

// memUsers is a tiny in-memory UserStore, enough for the signup and
// login endpoints under test.
type memUsers struct {
	users map[string]model.User
}

func (s *memUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return repository.ErrUsernameExists
		}
		if existing.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s *memUsers) GetByID(_ context.Context, id string) (model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (s *memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (s *memUsers) UsernameEmailTaken(_ context.Context, username, email, excludeID string) (bool, bool, error) {
	var usernameTaken, emailTaken bool
	for id, u := range s.users {
		if id == excludeID {
			continue
		}
		if u.Username == username {
			usernameTaken = true
		}
		if u.Email == email {
			emailTaken = true
		}
	}
	return usernameTaken, emailTaken, nil
}

func (s *memUsers) UpdateDetails(_ context.Context, u *model.User) error {
	s.users[u.ID] = *u
	return nil
}

func (s *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = hash
	s.users[id] = u
	return nil
}

func (s *memUsers) Delete(_ context.Context, id string) error {
	delete(s.users, id)
	return nil
}

func newTestHandler() *AuthHandler {
	auth := service.NewAuth(&memUsers{users: map[string]model.User{}}, nil, nil, nil, "test-secret", bcrypt.MinCost)
	return NewAuthHandler(auth)
}

func doJSON(e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, e.NewContext(req, rec)
}

func TestSignupHandler(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	rec, c := doJSON(e, http.MethodPost, "/user/signup",
		`{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"Jane@Example.com","password":"Str0ng!pass"}`)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "User has been created successfully")
}

func TestSignupHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "short password",
			body: `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"j@e.com","password":"Sh0rt!"}`,
			want: "at least 8 characters",
		},
		{
			name: "no uppercase",
			body: `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"j@e.com","password":"str0ng!pass"}`,
			want: "uppercase",
		},
		{
			name: "no special character",
			body: `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"j@e.com","password":"Str0ngpass"}`,
			want: "special character",
		},
		{
			name: "username too short",
			body: `{"firstname":"Jane","lastname":"Doe","username":"jd","email":"j@e.com","password":"Str0ng!pass"}`,
			want: "between 3 and 15",
		},
		{
			name: "missing names",
			body: `{"username":"janedoe","email":"j@e.com","password":"Str0ng!pass"}`,
			want: "required",
		},
	}
	h := newTestHandler()
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, c := doJSON(e, http.MethodPost, "/user/signup", tt.body)
			require.NoError(t, h.Signup(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestSignupHandlerTaken(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	body := `{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"jane@example.com","password":"Str0ng!pass"}`
	rec, c := doJSON(e, http.MethodPost, "/user/signup", body)
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = doJSON(e, http.MethodPost, "/user/signup", body)
	require.NoError(t, h.Signup(c))
	assert.Equal(t, http.StatusIMUsed, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	h := newTestHandler()
	e := echo.New()

	rec, c := doJSON(e, http.MethodPost, "/user/signup",
		`{"firstname":"Jane","lastname":"Doe","username":"janedoe","email":"jane@example.com","password":"Str0ng!pass"}`)
	require.NoError(t, h.Signup(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, c = doJSON(e, http.MethodPost, "/user/login", `{"username":"janedoe","password":"Str0ng!pass"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "access_token")
	assert.Contains(t, rec.Body.String(), `"token_type":"bearer"`)

	rec, c = doJSON(e, http.MethodPost, "/user/login", `{"username":"janedoe","password":"wrong"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{service.ErrCredentialsTaken, http.StatusIMUsed},
		{service.ErrUsernameTaken, http.StatusIMUsed},
		{service.ErrEmailTaken, http.StatusIMUsed},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{service.ErrUnauthorized, http.StatusUnauthorized},
		{utils.ErrTokenExpired, http.StatusUnauthorized},
		{utils.ErrTokenInvalid, http.StatusUnauthorized},
		{service.ErrPasswordMismatch, http.StatusUnprocessableEntity},
		{service.ErrUserNotFound, http.StatusNotFound},
		{repository.ErrOtpNotFound, http.StatusNotFound},
		{repository.ErrOtpExpired, http.StatusGone},
		{repository.ErrOtpUsed, http.StatusGone},
		{service.ErrStoreUnavailable, http.StatusServiceUnavailable},
	}
	e := echo.New()
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec, c := doJSON(e, http.MethodGet, "/", "")
			require.NoError(t, authError(c, tt.err))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
