package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/seraas-authentication/internal/common/clock"
	commonhttp "github.com/AlibekovAA/seraas-authentication/internal/common/http"
	"github.com/AlibekovAA/seraas-authentication/internal/common/logger"
	recordhttp "github.com/AlibekovAA/seraas-authentication/internal/record/http"
	"github.com/AlibekovAA/seraas-authentication/internal/record/service"
	"github.com/AlibekovAA/seraas-authentication/internal/testutil"
	userdomain "github.com/AlibekovAA/seraas-authentication/internal/user/domain"
)

const (
	flushKey    = "flush-secret-key"
	unknownUUID = "0b6a4c1e-93f4-4d8e-9d43-0e8e0c5d7f11"
)

type fixture struct {
	handler http.Handler
	clock   *clock.MockClock
	users   *testutil.UserStore
	userID  string
}

func setupRecordRouter(t *testing.T) fixture {
	t.Helper()
	log := logger.NewWithWriter(io.Discard, "test", "error")
	mockClock := clock.NewMockClock(time.Date(2024, 3, 10, 8, 30, 0, 0, time.UTC))
	users := testutil.NewUserStore()

	user, err := users.Create(context.Background(), userdomain.User{
		Name:        "alice",
		DateCreated: mockClock.Now(),
		LastUsed:    mockClock.Now(),
	})
	require.NoError(t, err)

	svc := service.NewRecordService(service.RecordServiceDeps{
		Records: testutil.NewRecordStore(),
		Users:   users,
		Clock:   mockClock,
		Log:     log,
	}, service.RecordServiceConfig{FlushSecretKey: flushKey})

	r := commonhttp.NewRouter(log, commonhttp.RouterOptions{ServiceName: "test"})
	recordhttp.NewHandler(svc, 5*time.Second, log).Mount(r)

	return fixture{handler: r, clock: mockClock, users: users, userID: string(user.ID)}
}

func (f fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var env commonhttp.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env.Code
}

func TestRecordHTTP_SendListLoad(t *testing.T) {
	f := setupRecordRouter(t)

	rec := f.do(t, http.MethodPost, "/authentication/data/"+f.userID,
		`{"fileName":"clip.wav","output":{"emotions":{"happy":0.9}}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var sent map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sent))
	assert.Equal(t, "clip.wav", sent["fileName"])
	assert.Equal(t, f.userID, sent["userId"])
	assert.Equal(t, []any{"all"}, sent["emotionsAvailable"])
	assert.Equal(t, float64(-1), sent["periodicQueryInterval"])
	assert.NotContains(t, sent, "output")
	recordID, _ := sent["id"].(string)
	require.NotEmpty(t, recordID)

	rec = f.do(t, http.MethodPost, "/authentication/data/"+f.userID,
		`{"fileName":"second.wav","paramEmotionsAvailable":["sad"],"paramPeriodicQuery":30,"output":[1,2]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var second map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&second))
	assert.Equal(t, []any{"sad"}, second["emotionsAvailable"])
	assert.Equal(t, float64(30), second["periodicQueryInterval"])

	rec = f.do(t, http.MethodGet, "/authentication/data/"+f.userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var ids []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ids))
	assert.Equal(t, []string{recordID, second["id"].(string)}, ids)

	rec = f.do(t, http.MethodGet, "/authentication/data/"+f.userID+"/"+recordID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var loaded map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loaded))
	assert.JSONEq(t, `{"emotions":{"happy":0.9}}`, string(loaded["output"]))
	assert.JSONEq(t, `"clip.wav"`, string(loaded["fileName"]))
}

func TestRecordHTTP_ListEmpty(t *testing.T) {
	f := setupRecordRouter(t)

	rec := f.do(t, http.MethodGet, "/authentication/data/"+f.userID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecordHTTP_Send_Errors(t *testing.T) {
	f := setupRecordRouter(t)

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"empty user segment", "/authentication/data/", `{"fileName":"a.wav","output":{"x":1}}`, http.StatusNotFound, commonhttp.CodeNotFound},
		{"malformed user id", "/authentication/data/abc", `{"fileName":"a.wav","output":{"x":1}}`, http.StatusBadRequest, "INVALID_USER_ID"},
		{"unknown user", "/authentication/data/" + unknownUUID, `{"fileName":"a.wav","output":{"x":1}}`, http.StatusNotFound, "USER_NOT_FOUND"},
		{"missing file name", "/authentication/data/" + f.userID, `{"output":{"x":1}}`, http.StatusBadRequest, "FILE_NAME_REQUIRED"},
		{"missing output", "/authentication/data/" + f.userID, `{"fileName":"a.wav"}`, http.StatusBadRequest, "OUTPUT_REQUIRED"},
		{"empty output", "/authentication/data/" + f.userID, `{"fileName":"a.wav","output":{}}`, http.StatusBadRequest, "OUTPUT_REQUIRED"},
		{"invalid json", "/authentication/data/" + f.userID, `{"fileName":`, http.StatusBadRequest, commonhttp.CodeInvalidJSON},
		{"nul in file name", "/authentication/data/" + f.userID, `{"fileName":"a\u0000.wav","output":{"x":1}}`, http.StatusBadRequest, "FILE_NAME_INVALID"},
		{"interval out of range", "/authentication/data/" + f.userID, `{"fileName":"a.wav","paramPeriodicQuery":4294967296,"output":{"x":1}}`, http.StatusBadRequest, "PERIODIC_QUERY_OUT_OF_RANGE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestRecordHTTP_Load_Errors(t *testing.T) {
	f := setupRecordRouter(t)

	tests := []struct {
		name   string
		path   string
		status int
		code   string
	}{
		{"empty user segment", "/authentication/data/", http.StatusNotFound, commonhttp.CodeNotFound},
		{"empty user before query", "/authentication/data//" + unknownUUID, http.StatusNotFound, commonhttp.CodeNotFound},
		{"empty query segment", "/authentication/data/" + f.userID + "/", http.StatusNotFound, commonhttp.CodeNotFound},
		{"malformed query id", "/authentication/data/" + f.userID + "/xyz", http.StatusBadRequest, "INVALID_RECORD_ID"},
		{"unknown record", "/authentication/data/" + f.userID + "/" + unknownUUID, http.StatusNotFound, "RECORD_NOT_FOUND"},
		{"unknown user", "/authentication/data/" + unknownUUID + "/" + unknownUUID, http.StatusNotFound, "USER_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, tt.path, "")
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, errorCode(t, rec))
		})
	}
}

func TestRecordHTTP_Load_ForeignRecordHidden(t *testing.T) {
	f := setupRecordRouter(t)

	bob, err := f.users.Create(context.Background(), userdomain.User{Name: "bob"})
	require.NoError(t, err)

	rec := f.do(t, http.MethodPost, "/authentication/data/"+string(bob.ID), `{"fileName":"bob.wav","output":{"x":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var sent map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sent))

	rec = f.do(t, http.MethodGet, "/authentication/data/"+f.userID+"/"+sent["id"].(string), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "RECORD_NOT_FOUND", errorCode(t, rec))
}

func TestRecordHTTP_TouchesLastUsed(t *testing.T) {
	f := setupRecordRouter(t)

	f.clock.Advance(2 * time.Hour)
	rec := f.do(t, http.MethodGet, "/authentication/data/"+f.userID, "")
	require.Equal(t, http.StatusOK, rec.Code)

	user, ok := f.users.Get(userdomain.ID(f.userID))
	require.True(t, ok)
	assert.Equal(t, f.clock.Now(), user.LastUsed)
}

func TestRecordHTTP_Flush(t *testing.T) {
	f := setupRecordRouter(t)

	rec := f.do(t, http.MethodPost, "/authentication/data/"+f.userID, `{"fileName":"clip.wav","output":{"x":1}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/authentication/flush", `{"secretKey":"wrong"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "INVALID_SECRET_KEY", errorCode(t, rec))

	rec = f.do(t, http.MethodPost, "/authentication/flush", `{"secretKey":"`+flushKey+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removedCount":0}`, rec.Body.String())

	f.clock.Advance(25 * time.Hour)
	rec = f.do(t, http.MethodPost, "/authentication/flush", `{"secretKey":"`+flushKey+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removedCount":1}`, rec.Body.String())

	rec = f.do(t, http.MethodPost, "/authentication/flush", `{"secretKey":"`+flushKey+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"removedCount":0}`, rec.Body.String())

	rec = f.do(t, http.MethodGet, "/authentication/data/"+f.userID, "")
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecordHTTP_BodyTooLarge(t *testing.T) {
	f := setupRecordRouter(t)

	big := `{"fileName":"a.wav","output":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/authentication/data/"+f.userID, bytes.NewReader([]byte(big)))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
