// internal/pkg/response/response_test.go
package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	xerrors "loyalty-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	FromError(c, err)
	return w
}

func TestFromErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"bad request", xerrors.BadRequest("CodCliente inválido."), http.StatusBadRequest, `{"error":"CodCliente inválido."}`},
		{"not found", xerrors.NotFound("El pago no existe."), http.StatusNotFound, `{"error":"El pago no existe."}`},
		{"conflict", xerrors.Conflict("Ya existe un plan activo con ese nombre."), http.StatusConflict, `{"error":"Ya existe un plan activo con ese nombre."}`},
		{"internal", xerrors.Internal("Error al crear el plan."), http.StatusInternalServerError, `{"error":"Error al crear el plan."}`},
		{"unknown", assert.AnError, http.StatusInternalServerError, `{"error":"Error interno del servidor."}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, w.Body.String())
		})
	}
}

func TestListEnvelopeIncludesCount(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	List(c, 2, []string{"a", "b"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), `"timestamp"`)
}
