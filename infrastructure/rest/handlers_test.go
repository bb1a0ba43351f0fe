package rest_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"chat-relay/auth"
	"chat-relay/domain"
	"chat-relay/errors"
	"chat-relay/infrastructure/rest"
	"chat-relay/mocks"
	"chat-relay/repositories"
	"chat-relay/services"
)

type fixture struct {
	authMock    *mocks.MockIAuthService
	historyMock *mocks.MockIHistoryService
	issuer      *auth.TokenIssuer
	router      http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	authMock := mocks.NewMockIAuthService(ctrl)
	historyMock := mocks.NewMockIHistoryService(ctrl)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	api := rest.NewAPI(authMock, historyMock, log)
	router := rest.NewRouter(api, issuer, http.NotFoundHandler())
	return &fixture{authMock: authMock, historyMock: historyMock, issuer: issuer, router: router}
}

func (f *fixture) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestRegisterHandler(t *testing.T) {
	t.Run("should return 201 and credentials on success", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.authMock.EXPECT().
			Register(auth.RegisterRequest{Email: "test@example.com", Username: "alice", Password: "longenough"}).
			Return(services.Credentials{Token: "tok", UserID: "u1", Email: "test@example.com", Username: "alice"}, nil)

		rec := f.do(t, http.MethodPost, "/api/auth/register",
			`{"email":"test@example.com","username":"alice","password":"longenough"}`, "")

		req.Equal(http.StatusCreated, rec.Code)
		envelope := decodeEnvelope(t, rec)
		req.Equal("success", envelope["status"])
		data := envelope["data"].(map[string]any)
		req.Equal("tok", data["token"])
		req.Equal("alice", data["user"].(map[string]any)["username"])
	})

	t.Run("should return 400 on duplicate account", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.authMock.EXPECT().
			Register(gomock.Any()).
			Return(services.Credentials{}, errors.ErrUserAlreadyExists)

		rec := f.do(t, http.MethodPost, "/api/auth/register",
			`{"email":"test@example.com","username":"alice","password":"longenough"}`, "")

		req.Equal(http.StatusBadRequest, rec.Code)
		req.Equal("error", decodeEnvelope(t, rec)["status"])
	})

	t.Run("should return 400 on an unreadable body", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		rec := f.do(t, http.MethodPost, "/api/auth/register", "{not json", "")
		req.Equal(http.StatusBadRequest, rec.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("should return 401 with a generic message on bad credentials", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		f.authMock.EXPECT().
			Login(gomock.Any()).
			Return(services.Credentials{}, errors.ErrInvalidCredentials)

		rec := f.do(t, http.MethodPost, "/api/auth/login",
			`{"email":"test@example.com","password":"wrong"}`, "")

		req.Equal(http.StatusUnauthorized, rec.Code)
		req.Equal("Invalid email or password", decodeEnvelope(t, rec)["message"])
	})
}

func TestBearerMiddleware(t *testing.T) {
	t.Run("should reject a missing token", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/rooms", "", "")
		req.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("should reject a garbage token", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)

		rec := f.do(t, http.MethodGet, "/api/rooms", "", "not.a.jwt")
		req.Equal(http.StatusUnauthorized, rec.Code)
	})

	t.Run("should expose the validated claims to the handler", func(t *testing.T) {
		req := require.New(t)
		issuer := auth.NewTokenIssuer("test-secret", time.Hour)
		token, err := issuer.Generate("u1", "alice")
		req.NoError(err)

		var seen *auth.CustomClaims
		protected := rest.Bearer(issuer, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = rest.ClaimsFrom(r.Context())
		}))

		httpReq := httptest.NewRequest(http.MethodGet, "/", nil)
		httpReq.Header.Set("Authorization", "Bearer "+token)
		protected.ServeHTTP(httptest.NewRecorder(), httpReq)

		req.NotNil(seen)
		req.Equal("u1", seen.UserID)
		req.Equal("alice", seen.Username)
	})

	t.Run("should pass a valid token through", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		token, err := f.issuer.Generate("u1", "alice")
		req.NoError(err)

		f.historyMock.EXPECT().ListRooms().Return(nil, nil)

		rec := f.do(t, http.MethodGet, "/api/rooms", "", token)
		req.Equal(http.StatusOK, rec.Code)
	})
}

func TestMessagesHandler(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	token, err := f.issuer.Generate("u1", "alice")
	req.NoError(err)

	id := uuid.New()
	at := time.Date(2025, 6, 1, 12, 30, 45, 123_000_000, time.UTC)
	next := "cursor-1"
	f.historyMock.EXPECT().
		GetMessages(domain.RoomID("general"), nil).
		Return([]domain.Message{
			{ID: id, Room: domain.RoomID("general"), Author: "alice", Content: "hello", CreatedAt: at},
		}, &next, nil)

	rec := f.do(t, http.MethodGet, "/api/messages/general", "", token)
	req.Equal(http.StatusOK, rec.Code)

	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	req.Equal("cursor-1", data["cursor"])
	messages := data["messages"].([]any)
	req.Len(messages, 1)
	first := messages[0].(map[string]any)
	req.Equal("hello", first["content"])
	req.Equal("2025-06-01T12:30:45.123Z", first["createdAt"])
	req.Equal("alice", first["user"].(map[string]any)["username"])
}

func TestMessagesHandler_Forwards_Cursor(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	token, err := f.issuer.Generate("u1", "alice")
	req.NoError(err)

	cursor := "abc"
	f.historyMock.EXPECT().
		GetMessages(domain.RoomID("general"), &cursor).
		Return(nil, nil, nil)

	rec := f.do(t, http.MethodGet, "/api/messages/general?cursor=abc", "", token)
	req.Equal(http.StatusOK, rec.Code)
}

func TestSearchHandler(t *testing.T) {
	t.Run("should require the q parameter", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		token, err := f.issuer.Generate("u1", "alice")
		req.NoError(err)

		rec := f.do(t, http.MethodGet, "/api/messages/general/search", "", token)
		req.Equal(http.StatusBadRequest, rec.Code)
	})

	t.Run("should return matches", func(t *testing.T) {
		req := require.New(t)
		f := newFixture(t)
		token, err := f.issuer.Generate("u1", "alice")
		req.NoError(err)

		f.historyMock.EXPECT().
			SearchMessages(gomock.Any(), domain.RoomID("general"), "badger").
			Return([]domain.Message{
				{ID: uuid.New(), Room: domain.RoomID("general"), Author: "bob", Content: "badger facts", CreatedAt: time.Now().UTC()},
			}, nil)

		rec := f.do(t, http.MethodGet, "/api/messages/general/search?q=badger", "", token)
		req.Equal(http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		req.Len(data["messages"].([]any), 1)
	})
}

func TestCreateRoomHandler(t *testing.T) {
	req := require.New(t)
	f := newFixture(t)
	token, err := f.issuer.Generate("u1", "alice")
	req.NoError(err)

	f.historyMock.EXPECT().
		CreateRoom("").
		Return(repositories.RoomRecord{}, errors.ErrRoomNameRequired)

	rec := f.do(t, http.MethodPost, "/api/rooms", `{"name":""}`, token)
	req.Equal(http.StatusBadRequest, rec.Code)
}
