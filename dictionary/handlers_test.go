package dictionary

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupDictRouter(repo WordRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(NewService(repo, fixedClock{testTime}))

	r := gin.New()
	r.GET("/api/dictionary", handler.ListHandler)
	r.POST("/api/dictionary", handler.AddHandler)
	r.PUT("/api/dictionary/:id", handler.UpdateHandler)
	r.DELETE("/api/dictionary/:id", handler.DeleteHandler)
	r.POST("/api/dictionary/import", handler.ImportHandler)
	return r
}

func doDictJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListHandler(t *testing.T) {
	t.Parallel()

	t.Run("lists words", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("ListWords", mock.Anything, "en").
			Return([]Word{{ID: "w1", Word: "apple", Language: "en", CreatedAt: testTime}}, nil).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodGet, "/api/dictionary?language=en", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var words []Word
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &words))
		require.Len(t, words, 1)
		assert.Equal(t, "apple", words[0].Word)
	})

	t.Run("bad language filter", func(t *testing.T) {
		rec := doDictJSON(setupDictRouter(&MockWordRepo{}), http.MethodGet, "/api/dictionary?language=fr", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrBadLanguageStr)
	})
}

func TestAddHandler(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("InsertWord", mock.Anything, mock.Anything).Return(nil).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodPost, "/api/dictionary",
			`{"word": "Apple", "category": "fruit", "language": "en"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var word Word
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &word))
		assert.Equal(t, "apple", word.Word)
		assert.NotEmpty(t, word.ID)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("InsertWord", mock.Anything, mock.Anything).Return(ErrDuplicateWord).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodPost, "/api/dictionary",
			`{"word": "apple", "language": "en"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrWordExistsStr)
	})

	t.Run("blank word", func(t *testing.T) {
		rec := doDictJSON(setupDictRouter(&MockWordRepo{}), http.MethodPost, "/api/dictionary",
			`{"word": "  ", "language": "en"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrWordRequiredStr)
	})

	t.Run("malformed body", func(t *testing.T) {
		rec := doDictJSON(setupDictRouter(&MockWordRepo{}), http.MethodPost, "/api/dictionary", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrInvalidRequestFormatStr)
	})
}

func TestUpdateHandler(t *testing.T) {
	t.Parallel()

	t.Run("unknown id maps to not found", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("UpdateWord", mock.Anything, mock.Anything).Return(ErrWordNotFound).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodPut, "/api/dictionary/w404",
			`{"word": "apple", "language": "en"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrWordNotFoundStr)
	})

	t.Run("success", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("UpdateWord", mock.Anything, Word{ID: "w1", Word: "apple", Language: "en"}).
			Return(nil).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodPut, "/api/dictionary/w1",
			`{"word": "Apple", "language": "en"}`)
		assert.Equal(t, http.StatusOK, rec.Code)
		repo.AssertExpectations(t)
	})
}

func TestDeleteHandler(t *testing.T) {
	t.Parallel()
	repo := &MockWordRepo{}
	repo.On("DeleteWord", mock.Anything, "w1").Return(nil).Once()

	rec := doDictJSON(setupDictRouter(repo), http.MethodDelete, "/api/dictionary/w1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	repo.AssertExpectations(t)
}

func TestImportHandler(t *testing.T) {
	t.Parallel()

	t.Run("reports counts", func(t *testing.T) {
		repo := &MockWordRepo{}
		repo.On("ImportWords", mock.Anything, mock.Anything).Return(2, nil).Once()

		rec := doDictJSON(setupDictRouter(repo), http.MethodPost, "/api/dictionary/import",
			`[{"word": "apple", "language": "en"}, {"word": "banana", "language": "en"}, {"word": ""}]`)
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]int
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2, body["imported"])
		assert.Equal(t, 1, body["skipped"])
	})

	t.Run("payload must be an array", func(t *testing.T) {
		rec := doDictJSON(setupDictRouter(&MockWordRepo{}), http.MethodPost, "/api/dictionary/import",
			`{"word": "apple"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrInvalidRequestFormatStr)
	})
}
