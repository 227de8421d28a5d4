package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrinet/models"
	"agrinet/registration"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users     map[string]*models.User
	findErr   error
	insertErr error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.users[email], nil
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, exists := f.users[user.Email]; exists {
		return registration.ErrEmailInUse
	}
	f.users[user.Email] = user
	return nil
}

type authResponse struct {
	Proceed bool                   `json:"proceed"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func newAuthRouter(store *fakeUserStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &Handler{users: store, reg: registration.NewService(store)}
	router := gin.New()
	router.POST("/api/users/register", h.Register)
	router.POST("/api/users/login", h.Login)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, path string, body map[string]string) (*httptest.ResponseRecorder, authResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestRegisterSuccess(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	w, resp := doJSON(t, router, "/api/users/register", map[string]string{
		"email":    "farmer@agri.com",
		"password": "Str0ng!Pass",
		"name":     "Farmer Joe",
		"userName": "farmerjoe",
		"bio":      "Growing wheat",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Proceed)
	assert.Equal(t, "USER CREATED SUCCESSFULLY", resp.Message)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "farmer@agri.com", resp.Data["Email"])
	assert.Equal(t, "Farmer Joe", resp.Data["Name"])
	assert.Equal(t, "farmerjoe", resp.Data["UserName"])
	assert.Equal(t, "Growing wheat", resp.Data["bio"])
	assert.NotEmpty(t, resp.Data["UserID"])

	// The response hash is the one actually stored.
	stored := store.users["farmer@agri.com"]
	require.NotNil(t, stored)
	assert.Equal(t, stored.HashedPassword, resp.Data["HashedPassword"])
	assert.NotEqual(t, "Str0ng!Pass", resp.Data["HashedPassword"])
}

func TestRegisterInvalidEmail(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	w, resp := doJSON(t, router, "/api/users/register", map[string]string{
		"email":    "not-an-email",
		"password": "Str0ng!Pass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Proceed)
	assert.Equal(t, "INVALID EMAIL ADDRESS", resp.Message)
	assert.Empty(t, store.users, "no document may be created on rejection")
}

func TestRegisterWeakPassword(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	w, resp := doJSON(t, router, "/api/users/register", map[string]string{
		"email":    "farmer@agri.com",
		"password": "weakpass",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Proceed)
	assert.Contains(t, resp.Message, "INVALID PASSWORD")
	assert.Contains(t, resp.Message, "uppercase")
	assert.Contains(t, resp.Message, "special character")
	assert.Empty(t, store.users)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	body := map[string]string{
		"email":    "farmer@agri.com",
		"password": "Str0ng!Pass",
	}

	w, resp := doJSON(t, router, "/api/users/register", body)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, resp.Proceed)

	// Resubmitting rejects both times and leaves exactly one document.
	for i := 0; i < 2; i++ {
		w, resp = doJSON(t, router, "/api/users/register", body)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, resp.Proceed)
		assert.Equal(t, "EMAIL ALREADY IN USE", resp.Message)
	}
	assert.Len(t, store.users, 1)
}

func TestRegisterStorageFault(t *testing.T) {
	store := newFakeUserStore()
	store.findErr = errors.New("connection lost")
	router := newAuthRouter(store)

	w, resp := doJSON(t, router, "/api/users/register", map[string]string{
		"email":    "farmer@agri.com",
		"password": "Str0ng!Pass",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, resp.Proceed)
	assert.Equal(t, "ERROR SIGNING UP", resp.Message)
}

func TestRegisterMultipartWithImage(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	image := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("email", "grower@agri.com"))
	require.NoError(t, mw.WriteField("password", "Str0ng!Pass"))
	require.NoError(t, mw.WriteField("name", "Grower"))
	fw, err := mw.CreateFormFile("profile_img", "avatar.png")
	require.NoError(t, err)
	_, err = fw.Write(image)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/users/register", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Proceed)

	// Image bytes are stored verbatim and echoed base64-encoded.
	stored := store.users["grower@agri.com"]
	require.NotNil(t, stored)
	assert.Equal(t, image, stored.ProfileImg)

	encoded, ok := resp.Data["profile_img"].(string)
	require.True(t, ok)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Equal(t, image, decoded)
}

func TestLogin(t *testing.T) {
	store := newFakeUserStore()
	router := newAuthRouter(store)

	_, resp := doJSON(t, router, "/api/users/register", map[string]string{
		"email":    "farmer@agri.com",
		"password": "Str0ng!Pass",
		"userName": "farmerjoe",
	})
	require.True(t, resp.Proceed)

	w, resp := doJSON(t, router, "/api/users/login", map[string]string{
		"email":    "farmer@agri.com",
		"password": "Str0ng!Pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Proceed)
	assert.Equal(t, "farmerjoe", resp.Data["UserName"])

	w, resp = doJSON(t, router, "/api/users/login", map[string]string{
		"email":    "farmer@agri.com",
		"password": "Wrong!Pass1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Proceed)
	assert.Equal(t, "INVALID EMAIL OR PASSWORD", resp.Message)

	w, resp = doJSON(t, router, "/api/users/login", map[string]string{
		"email":    "nobody@agri.com",
		"password": "Str0ng!Pass",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, resp.Proceed)

	w, resp = doJSON(t, router, "/api/users/login", map[string]string{
		"email": "farmer@agri.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, resp.Proceed)
}
