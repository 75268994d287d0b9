// apperr/respond_test.go
package apperr

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_AuthRequired(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, New(AuthRequired, "Authentication required"))

	assert.Equal(t, 401, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "Authentication required", body["detail"])
}

func TestWriteError_Validation(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, Validationf("bad input"))

	assert.Equal(t, 400, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "bad input", body["detail"])
}

func TestWriteError_DomainEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, Domainf("NO_TENANTS", "No available organizations found"))

	assert.Equal(t, 400, rr.Code)

	var body DetailedErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "No available organizations found", body.Detail)
	assert.Equal(t, "NO_TENANTS", body.ErrorCode)
	assert.NotEmpty(t, body.Timestamp)
}

func TestWriteError_DomainStatusOverride(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, Domainf("NO_TENANT_SELECTED", "No organisation tenant found").WithStatus(404))

	assert.Equal(t, 404, rr.Code)
}

func TestWriteError_RemoteAndUntagged(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, Remotef(errors.New("connection refused"), "request to Xero failed"))
	assert.Equal(t, 500, rr.Code)

	rr = httptest.NewRecorder()
	WriteError(rr, errors.New("boom"))
	assert.Equal(t, 500, rr.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["detail"])
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Remotef(inner, "outer")
	assert.True(t, errors.Is(err, inner))
	assert.Contains(t, err.Error(), "outer")
	assert.Contains(t, err.Error(), "inner")
}
