package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_Defaults(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
}

func TestWriteHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteHeader_OnlyFirstCallCounts(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusBadRequest)
	w.WriteHeader(http.StatusInternalServerError)

	assert.Equal(t, http.StatusBadRequest, w.StatusCode())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWrite_RecordsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte(`{"status":"ok"}`))

	assert.NoError(t, err)
	assert.Equal(t, 15, n)
	assert.Equal(t, 15, w.BytesWritten())
	assert.Equal(t, `{"status":"ok"}`, rec.Body.String())
}

func TestWrite_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	_, err := w.Write([]byte("hello"))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWrite_Accumulates(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	_, _ = w.Write([]byte("hello "))
	_, _ = w.Write([]byte("world"))

	assert.Equal(t, 11, w.BytesWritten())
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	assert.Same(t, http.ResponseWriter(rec), w.Unwrap())
}
