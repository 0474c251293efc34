package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-mongo-todo/backend/testutil"
)

func TestFallback_ServesIndexForUnknownPaths(t *testing.T) {
	_, r, _ := testutil.SetupTestDB(t)

	paths := []string{"/", "/anything", "/deep/client/route", "/todos/abc", "/index.html", "/a/../anything", "/../../etc/passwd"}
	for _, path := range paths {
		w := testutil.Do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, testutil.IndexHTML, w.Body.String(), path)
	}
}

func TestFallback_ServesExistingAsset(t *testing.T) {
	_, r, _ := testutil.SetupTestDB(t)

	w := testutil.Do(t, r, http.MethodGet, "/script.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "// script", w.Body.String())
}

func TestFallback_OtherMethodsAreNotFound(t *testing.T) {
	_, r, _ := testutil.SetupTestDB(t)

	w := testutil.Do(t, r, http.MethodPost, "/anything", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestFallback_HeadReturnsIndexHeaders(t *testing.T) {
	_, r, _ := testutil.SetupTestDB(t)

	w := testutil.Do(t, r, http.MethodHead, "/anything", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}
