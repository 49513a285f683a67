package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio/internal/auth"
	"portfolio/internal/config"
	"portfolio/internal/events"
	"portfolio/internal/handler"
	"portfolio/internal/model"
	"portfolio/internal/repository"
	"portfolio/internal/repository/mocks"
	"portfolio/internal/service"
	"portfolio/internal/validation"
)

type fixture struct {
	e        *echo.Echo
	codec    *auth.TokenCodec
	users    *mocks.UserRepository
	blogs    *mocks.BlogRepository
	projects *mocks.ProjectRepository
	about    *mocks.AboutRepository
	contact  *mocks.ContactRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	codec, err := auth.NewTokenCodec([]byte("router-test-secret"), auth.TokenTTL)
	require.NoError(t, err)

	f := &fixture{
		e:        echo.New(),
		codec:    codec,
		users:    new(mocks.UserRepository),
		blogs:    new(mocks.BlogRepository),
		projects: new(mocks.ProjectRepository),
		about:    new(mocks.AboutRepository),
		contact:  new(mocks.ContactRepository),
	}
	log := zap.NewNop()
	gate := validation.New()
	cfg := &config.Config{CORSOrigins: []string{"http://localhost:3000"}}

	Register(f.e, cfg, codec, gate, log, Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(f.users, codec, log), false),
		Blog:    handler.NewBlogHandler(service.NewBlogService(f.blogs, nil, events.NopPublisher{}, "blog.published", log), gate),
		Project: handler.NewProjectHandler(service.NewProjectService(f.projects, nil, log), gate),
		About:   handler.NewAboutHandler(service.NewAboutService(f.about, nil, log), gate),
		Contact: handler.NewContactHandler(service.NewContactService(f.contact, events.NopPublisher{}, "contact.submitted", log), gate),
	})
	return f
}

func (f *fixture) tokenFor(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := f.codec.Issue(auth.Claims{UserID: userID.String(), Username: "user", Role: model.RoleUser})
	require.NoError(t, err)
	return token
}

func (f *fixture) do(method, path, body, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

const blogBody = `{"title":"Hello","slug":"hello","content":"body","excerpt":"short","tags":["go"],"published":true}`

func TestHealthz(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/healthz", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := &model.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com", PasswordHash: hash, Role: model.RoleAdmin}

	t.Run("success sets cookie", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)

		rec := f.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"password123"}`, "")

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		body := decode(t, rec)
		assert.Equal(t, "Login successful", body["message"])
		assert.Equal(t, map[string]interface{}{"username": "alice", "role": "admin"}, body["user"])
		token, _ := body["token"].(string)
		assert.NotEmpty(t, token)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, auth.CookieName, cookies[0].Name)
		assert.Equal(t, token, cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, int(auth.TokenTTL.Seconds()), cookies[0].MaxAge)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		f := newFixture(t)
		f.users.On("FindByEmail", mock.Anything, "alice@example.com").Return(user, nil)
		f.users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		wrong := f.do(http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"nope"}`, "")
		unknown := f.do(http.MethodPost, "/api/auth/login", `{"email":"nobody@example.com","password":"nope"}`, "")

		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, wrong.Body.String())
		assert.Equal(t, wrong.Code, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
		assert.Empty(t, unknown.Result().Cookies())
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/auth/login", `{}`, "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid input","details":{"email":"Email is required","password":"Password is required"}}`, rec.Body.String())
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/auth/logout", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	anon := f.do(http.MethodGet, "/api/auth/verify", "", "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.JSONEq(t, `{"authenticated":false}`, anon.Body.String())

	garbage := f.do(http.MethodGet, "/api/auth/verify", "", "not.a.token")
	assert.Equal(t, http.StatusUnauthorized, garbage.Code)

	rec := f.do(http.MethodGet, "/api/auth/verify", "", f.tokenFor(t, userID))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, userID.String(), body["user"].(map[string]interface{})["userId"])
}

func TestMutationsRequireAuth(t *testing.T) {
	f := newFixture(t)
	id := uuid.New().String()

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodPost, "/api/blogs", blogBody},
		{http.MethodPut, "/api/blogs/" + id, blogBody},
		{http.MethodDelete, "/api/blogs/" + id, ""},
		{http.MethodPost, "/api/projects", `{}`},
		{http.MethodDelete, "/api/projects/" + id, ""},
		{http.MethodPut, "/api/about", `{"bio":"x"}`},
		{http.MethodGet, "/api/contact", ""},
		{http.MethodDelete, "/api/contact/" + id, ""},
		{http.MethodPut, "/api/auth/password", `{}`},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := f.do(tc.method, tc.path, tc.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
		})
	}

	// A tampered token is rejected the same way.
	token := f.tokenFor(t, uuid.New())
	rec := f.do(http.MethodPost, "/api/blogs", blogBody, token[:len(token)-2]+"xx")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())

	f.blogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBearerHeaderIsAccepted(t *testing.T) {
	f := newFixture(t)
	f.contact.On("List", mock.Anything).Return([]model.ContactMessage{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+f.tokenFor(t, uuid.New()))
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCreateBlog_Validation(t *testing.T) {
	f := newFixture(t)
	token := f.tokenFor(t, uuid.New())

	rec := f.do(http.MethodPost, "/api/blogs", `{"title":"","slug":"hello","content":"body","excerpt":"short"}`, token)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "Invalid input", body["error"])
	assert.Equal(t, map[string]interface{}{"title": "Title is required"}, body["details"])
	f.blogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	rec = f.do(http.MethodPost, "/api/blogs", `{"title":"a","slug":"a","content":"b","excerpt":"c","tags":"go,web"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid input","details":{"tags":"Tags has an invalid type"}}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/blogs", `{"title":"a","slug":"   ","content":"b","excerpt":"c"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid input","details":{"slug":"Slug is required"}}`, rec.Body.String())

	rec = f.do(http.MethodPost, "/api/blogs", `[1,2,3]`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

func TestCreateBlog_DuplicateSlug(t *testing.T) {
	f := newFixture(t)
	f.blogs.On("FindBySlug", mock.Anything, "hello").Return(&model.BlogPost{ID: uuid.New(), Slug: "hello"}, nil)

	rec := f.do(http.MethodPost, "/api/blogs", blogBody, f.tokenFor(t, uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Slug already exists"}`, rec.Body.String())
	f.blogs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBlog_Success(t *testing.T) {
	f := newFixture(t)
	authorID := uuid.New()
	f.blogs.On("FindBySlug", mock.Anything, "hello").Return(nil, gorm.ErrRecordNotFound)
	f.blogs.On("Create", mock.Anything, mock.MatchedBy(func(p *model.BlogPost) bool {
		return p.AuthorID == authorID
	})).Return(nil)

	rec := f.do(http.MethodPost, "/api/blogs", blogBody, f.tokenFor(t, authorID))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "hello", body["slug"])
	assert.Equal(t, authorID.String(), body["authorId"])
	f.blogs.AssertExpectations(t)
}

func TestDeleteBlog_Ownership(t *testing.T) {
	f := newFixture(t)
	ownerID := uuid.New()
	postID := uuid.New()
	f.blogs.On("FindByID", mock.Anything, postID).Return(&model.BlogPost{ID: postID, AuthorID: ownerID, Slug: "hello"}, nil)
	f.blogs.On("Delete", mock.Anything, postID).Return(nil)

	rec := f.do(http.MethodDelete, "/api/blogs/"+postID.String(), "", f.tokenFor(t, uuid.New()))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Forbidden"}`, rec.Body.String())
	f.blogs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)

	rec = f.do(http.MethodDelete, "/api/blogs/"+postID.String(), "", f.tokenFor(t, ownerID))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Blog deleted"}`, rec.Body.String())
}

func TestGetBlog_Anonymous(t *testing.T) {
	f := newFixture(t)
	published := &model.BlogPost{ID: uuid.New(), Title: "Hello", Slug: "hello", Published: true}
	draft := &model.BlogPost{ID: uuid.New(), Slug: "draft"}
	missing := uuid.New()
	f.blogs.On("FindByID", mock.Anything, published.ID).Return(published, nil)
	f.blogs.On("FindByID", mock.Anything, draft.ID).Return(draft, nil)
	f.blogs.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
	f.blogs.On("FindBySlug", mock.Anything, "hello").Return(published, nil)

	rec := f.do(http.MethodGet, "/api/blogs/"+published.ID.String(), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hello", decode(t, rec)["title"])

	rec = f.do(http.MethodGet, "/api/blogs/slug/hello", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, id := range []string{missing.String(), draft.ID.String(), "not-a-uuid"} {
		rec = f.do(http.MethodGet, "/api/blogs/"+id, "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code, id)
		assert.JSONEq(t, `{"error":"Blog not found"}`, rec.Body.String())
	}
}

func TestListBlogs_AnonymousOnlyPublished(t *testing.T) {
	f := newFixture(t)
	f.blogs.On("List", mock.Anything, repository.ListFilter{PublishedOnly: true}).Return([]model.BlogPost{}, nil)

	rec := f.do(http.MethodGet, "/api/blogs", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.blogs.AssertExpectations(t)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	f := newFixture(t)
	f.projects.On("List", mock.Anything, repository.ListFilter{PublishedOnly: true}).Return(nil, assert.AnError)

	rec := f.do(http.MethodGet, "/api/projects", "", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func TestAboutAndContact(t *testing.T) {
	f := newFixture(t)
	f.about.On("Get", mock.Anything).Return(&model.AboutProfile{ID: 1, Bio: "Hi"}, nil)
	f.contact.On("Create", mock.Anything, mock.Anything).Return(nil)

	rec := f.do(http.MethodGet, "/api/about", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Hi", decode(t, rec)["bio"])

	rec = f.do(http.MethodPost, "/api/contact", `{"name":"Bob","email":"bob@example.com","subject":"Hi","message":"Hello"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(http.MethodPost, "/api/contact", `{"name":"Bob","email":"nope","subject":"Hi"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid input","details":{"email":"Email must be a valid email","message":"Message is required"}}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/nope", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
}

func TestUpdateAbout_AcceptsBlankWorkExperience(t *testing.T) {
	f := newFixture(t)
	f.about.On("Get", mock.Anything).Return(&model.AboutProfile{ID: 1, Bio: "Hi"}, nil)
	f.about.On("Save", mock.Anything, mock.MatchedBy(func(p *model.AboutProfile) bool {
		return len(p.WorkExperience) == 1 && p.WorkExperience[0].Company == ""
	})).Return(nil)

	body := `{"bio":"Hello","workExperience":[{"company":"","position":"","duration":"","description":""}],"skills":["go"]}`
	rec := f.do(http.MethodPut, "/api/about", body, f.tokenFor(t, uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Hello", decode(t, rec)["bio"])
	f.about.AssertExpectations(t)
}
