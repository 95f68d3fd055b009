package handler_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"probimport/internal/csvexport"
	"probimport/internal/domain"
	"probimport/internal/handler"
	"probimport/internal/service"
	"probimport/mocks"
)

func newProblemHandler() (*handler.ProblemHandler, *mocks.MockProblemService) {
	mockSvc := new(mocks.MockProblemService)
	return handler.NewProblemHandler(mockSvc, nil), mockSvc
}

func jsonContext(method, target string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestProblemHandler_Create_Success(t *testing.T) {
	h, mockSvc := newProblemHandler()

	expected := &domain.Problem{ID: uuid.New(), Title: "A+B", Difficulty: domain.DifficultyEasy}
	mockSvc.On("Create", mock.Anything, mock.MatchedBy(func(in service.ProblemInput) bool {
		return in.Title == "A+B" && len(in.TestCases) == 1 && in.TestCases[0].Output == "3"
	})).Return(expected, nil)

	c, w := jsonContext(http.MethodPost, "/api/v1/problems", map[string]interface{}{
		"title":      "A+B",
		"test_cases": []map[string]interface{}{{"input": "1 2", "output": "3", "is_sample": true}},
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestProblemHandler_Create_MissingTitle(t *testing.T) {
	h, mockSvc := newProblemHandler()

	c, w := jsonContext(http.MethodPost, "/api/v1/problems", map[string]interface{}{"hint": "x"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create")
}

func TestProblemHandler_Create_InvalidDifficulty(t *testing.T) {
	h, mockSvc := newProblemHandler()
	mockSvc.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidDifficulty)

	c, w := jsonContext(http.MethodPost, "/api/v1/problems", map[string]interface{}{"title": "x", "difficulty": "brutal"})
	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_DIFFICULTY", resp.Error.Code)
}

func TestProblemHandler_List_ClampsLimit(t *testing.T) {
	h, mockSvc := newProblemHandler()
	problems := []domain.Problem{{ID: uuid.New(), Title: "one"}}
	mockSvc.On("List", mock.Anything, 0, 20).Return(problems, 1, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/problems?limit=1000&offset=-5", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
	assert.Equal(t, 20, resp.Meta.Limit)
	mockSvc.AssertExpectations(t)
}

func TestProblemHandler_GetByID(t *testing.T) {
	h, mockSvc := newProblemHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(&domain.Problem{ID: id, Title: "found"}, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "found")
}

func TestProblemHandler_GetByID_InvalidID(t *testing.T) {
	h, mockSvc := newProblemHandler()

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/nope", nil)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GetByID")
}

func TestProblemHandler_GetByID_NotFound(t *testing.T) {
	h, mockSvc := newProblemHandler()
	id := uuid.New()
	mockSvc.On("GetByID", mock.Anything, id).Return(nil, domain.ErrNotFound)

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/"+id.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProblemHandler_Update(t *testing.T) {
	h, mockSvc := newProblemHandler()
	id := uuid.New()
	mockSvc.On("Update", mock.Anything, id, mock.MatchedBy(func(in service.ProblemInput) bool {
		return in.Title == "renamed" && in.TimeLimitMs == 2000
	})).Return(&domain.Problem{ID: id, Title: "renamed"}, nil)

	c, w := jsonContext(http.MethodPut, "/api/v1/problems/"+id.String(), map[string]interface{}{
		"title": "renamed", "time_limit": 2000,
	})
	c.Params = gin.Params{{Key: "id", Value: id.String()}}
	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestProblemHandler_ExportCSV_Paginates(t *testing.T) {
	h, mockSvc := newProblemHandler()

	first := make([]domain.Problem, 200)
	for i := range first {
		first[i] = domain.Problem{ID: uuid.New(), Title: "p", Difficulty: domain.DifficultyEasy}
	}
	second := []domain.Problem{{
		ID:          uuid.New(),
		Title:       "Last, with comma",
		Difficulty:  domain.DifficultyHard,
		TimeLimitMs: 2000,
		TestCases:   []domain.TestCase{{Input: "1", Output: "1"}},
	}}
	mockSvc.On("List", mock.Anything, 0, 200).Return(first, 201, nil)
	mockSvc.On("List", mock.Anything, 200, 200).Return(second, 201, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "problems_")

	body := w.Body.Bytes()
	require.True(t, len(body) >= 3)
	assert.Equal(t, csvexport.BOM, body[:3])

	records, err := csv.NewReader(strings.NewReader(string(body[3:]))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 202)
	assert.Equal(t, "ID", records[0][0])
	last := records[201]
	assert.Equal(t, "Last, with comma", last[1])
	assert.Equal(t, "hard", last[2])
	assert.Equal(t, "2000", last[3])
	assert.Equal(t, "1", last[5])
	mockSvc.AssertExpectations(t)
}

func TestProblemHandler_ExportCSV_ListError(t *testing.T) {
	h, mockSvc := newProblemHandler()
	mockSvc.On("List", mock.Anything, 0, 200).Return(nil, 0, errors.New("db down"))

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestProblemHandler_ExportCSV_Empty(t *testing.T) {
	h, mockSvc := newProblemHandler()
	mockSvc.On("List", mock.Anything, 0, 200).Return([]domain.Problem{}, 0, nil)

	c, w := jsonContext(http.MethodGet, "/api/v1/problems/export/csv", nil)
	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	records, err := csv.NewReader(strings.NewReader(w.Body.String()[3:])).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
