package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	FromError(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{ErrValidation("outside_working_hours"), http.StatusBadRequest},
		{ErrBusiness("too_soon"), http.StatusBadRequest},
		{ErrNotFound("barber_not_found"), http.StatusNotFound},
		{ErrForbidden("role_not_allowed"), http.StatusForbidden},
		{ErrConflict("slot_unavailable"), http.StatusConflict},
		{ErrUnauthorized("missing_tenant"), http.StatusUnauthorized},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range cases {
		status, _ := render(t, tt.err)
		assert.Equal(t, tt.status, status, "error %v", tt.err)
	}
}

func TestConcealedLooksLikeNotFound(t *testing.T) {
	hiddenStatus, hidden := render(t, ErrConcealed("barber"))
	missingStatus, missing := render(t, ErrNotFound("barber_not_found"))

	assert.Equal(t, missingStatus, hiddenStatus)
	assert.Equal(t, missing, hidden)
	assert.True(t, IsKind(ErrConcealed("barber"), KindForbidden))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("admission: %w", ErrConflict("slot_unavailable"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsBusiness(err, "slot_unavailable"))
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
}

func TestIsExclusionConflict(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"})

	assert.True(t, IsExclusionConflict(err))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsExclusionConflict(errors.New("other")))
}
