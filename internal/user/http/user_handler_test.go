// Package http provides HTTP handlers for user management operations.
package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/atelierhq/backend/internal/errors"
	"github.com/atelierhq/backend/internal/httputil"
	"github.com/atelierhq/backend/internal/user/domain"
	"github.com/atelierhq/backend/internal/user/http/dto"
	"github.com/atelierhq/backend/internal/user/http/mocks"
	"github.com/atelierhq/backend/internal/user/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func createTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserRouter(mockUC *mocks.MockUserUseCase) *gin.Engine {
	handler := NewUserHandler(mockUC, createTestLogger())

	router := gin.New()
	router.POST("/v1/users", handler.CreateUserHandler)
	router.GET("/v1/users", handler.ListUsersHandler)
	router.GET("/v1/users/:id", handler.GetUserHandler)
	router.PATCH("/v1/users/:id", handler.UpdateUserHandler)
	router.POST("/v1/users/:id/roles", handler.AssignRoleHandler)
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func testUserWithRoles() *domain.UserWithRoles {
	return &domain.UserWithRoles{
		User: domain.User{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "Jane Doe",
			Email:     "jane@example.com",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
			UpdatedAt: time.Now().UTC(),
		},
		Roles: []domain.Role{{ID: uuid.Must(uuid.NewV7()), Name: "user"}},
		Permissions: []domain.Permission{
			{ID: uuid.Must(uuid.NewV7()), Name: "users:read", Resource: "users", Action: "read"},
		},
	}
}

func TestUserHandler_Create(t *testing.T) {
	validBody := gin.H{
		"name":     "Jane Doe",
		"email":    "jane@example.com",
		"password": "Str0ng!Passw0rd",
		"roles":    []string{"user"},
	}

	t.Run("Success", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		user := testUserWithRoles()
		mockUC.On("Create", mock.Anything, mock.MatchedBy(func(input usecase.CreateUserInput) bool {
			return input.Email == "jane@example.com" && len(input.Roles) == 1
		})).Return(user, nil).Once()

		w := doJSON(router, http.MethodPost, "/v1/users", validBody)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.UserWithRolesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.ID)
		assert.Equal(t, "jane@example.com", response.Email)
		assert.Equal(t, []string{"user"}, response.Roles)
		assert.Equal(t, []string{"users:read"}, response.Permissions)
		mockUC.AssertExpectations(t)
	})

	t.Run("Error_ValidationFailure", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		w := doJSON(router, http.MethodPost, "/v1/users", gin.H{
			"name":     "Jane Doe",
			"email":    "jane@example.com",
			"password": "weak",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUC.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		mockUC.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.ErrUserAlreadyExists).Once()

		w := doJSON(router, http.MethodPost, "/v1/users", validBody)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_UnknownRole", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		mockUC.On("Create", mock.Anything, mock.Anything).
			Return(nil, domain.ErrRoleNotFound).Once()

		w := doJSON(router, http.MethodPost, "/v1/users", validBody)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		user := testUserWithRoles()
		mockUC.On("Get", mock.Anything, user.ID).Return(user, nil).Once()

		w := doJSON(router, http.MethodGet, "/v1/users/"+user.ID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.UserWithRolesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, user.ID, response.ID)
		assert.Equal(t, []string{"user"}, response.Roles)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		w := doJSON(router, http.MethodGet, "/v1/users/not-a-uuid", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("Get", mock.Anything, userID).Return(nil, domain.ErrUserNotFound).Once()

		w := doJSON(router, http.MethodGet, "/v1/users/"+userID.String(), nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_List(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		users := []*domain.User{
			{ID: uuid.Must(uuid.NewV7()), Email: "a@example.com"},
			{ID: uuid.Must(uuid.NewV7()), Email: "b@example.com"},
		}
		mockUC.On("List", mock.Anything, 0, 50).Return(users, nil).Once()

		w := doJSON(router, http.MethodGet, "/v1/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 2)
	})

	t.Run("Success_CustomPagination", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		mockUC.On("List", mock.Anything, 20, 10).Return([]*domain.User{}, nil).Once()

		w := doJSON(router, http.MethodGet, "/v1/users?offset=20&limit=10", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockUC.AssertExpectations(t)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		w := doJSON(router, http.MethodGet, "/v1/users?limit=1000", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUC.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_PersistenceFailure", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		mockUC.On("List", mock.Anything, 0, 50).
			Return(nil, apperrors.ErrPersistence).Once()

		w := doJSON(router, http.MethodGet, "/v1/users", nil)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "persistence_failure", response.Error)
	})
}

func TestUserHandler_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("Update", mock.Anything, userID, mock.MatchedBy(func(input usecase.UpdateUserInput) bool {
			return input.Name != nil && *input.Name == "New Name"
		})).Return(nil).Once()

		w := doJSON(router, http.MethodPatch, "/v1/users/"+userID.String(), gin.H{"name": "New Name"})

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUC.AssertExpectations(t)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		w := doJSON(router, http.MethodPatch, "/v1/users/not-a-uuid", gin.H{"name": "New Name"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("Update", mock.Anything, userID, mock.Anything).
			Return(domain.ErrUserNotFound).Once()

		w := doJSON(router, http.MethodPatch, "/v1/users/"+userID.String(), gin.H{"name": "New Name"})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandler_AssignRole(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("AssignRole", mock.Anything, userID, "moderator").Return(nil).Once()

		w := doJSON(router, http.MethodPost, "/v1/users/"+userID.String()+"/roles", gin.H{"role": "moderator"})

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUC.AssertExpectations(t)
	})

	t.Run("Error_MissingRole", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		w := doJSON(router, http.MethodPost, "/v1/users/"+userID.String()+"/roles", gin.H{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUC.AssertNotCalled(t, "AssignRole", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_AlreadyAssigned", func(t *testing.T) {
		mockUC := &mocks.MockUserUseCase{}
		router := newUserRouter(mockUC)

		userID := uuid.Must(uuid.NewV7())
		mockUC.On("AssignRole", mock.Anything, userID, "moderator").
			Return(domain.ErrRoleAlreadyAssigned).Once()

		w := doJSON(router, http.MethodPost, "/v1/users/"+userID.String()+"/roles", gin.H{"role": "moderator"})

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
