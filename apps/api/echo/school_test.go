package echoapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/school"
	logsvc "github.com/trezcool/masomo/services/logger"
	"github.com/trezcool/masomo/services/notify"
	"github.com/trezcool/masomo/tests"
)

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     string
	wantCode int
	wantData interface{} // decoded into the same type as wantData and compared
	wantText string
}

func setup(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()

	var notifications bytes.Buffer
	sch := testutil.NewSchool(t, notify.NewConsoleEmailNotifier(&notifications))
	testutil.CreateStudent(t, sch, "S001", "Alice Johnson", map[string]float64{"Math": 92, "English": 88, "Science": 95})
	testutil.CreateStudent(t, sch, "S002", "Bob Smith", map[string]float64{"Math": 55})
	testutil.CreateTeacher(t, sch, "T001", "Mr. Smith", "Math", 4999, "10A")

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), core.NewTestConfig())
	logger.Enable(false)

	return NewServer(Options{
		DisableReqLogs: true,
		School:         sch,
		Logger:         logger,
	}), &notifications
}

func newRequest(method, path, body string) (*http.Request, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, httptest.NewRecorder()
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)

			require.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, rec.Body.String())
			}
			if tt.wantData != nil {
				want, err := json.Marshal(tt.wantData)
				require.NoError(t, err)
				assert.JSONEq(t, string(want), rec.Body.String())
			}
		})
	}
}

func TestHome(t *testing.T) {
	app, _ := setup(t)
	runHTTPTests(t, app, []httpTest{
		{name: "welcome", method: http.MethodGet, path: "/", wantCode: http.StatusOK, wantText: "Welcome to Masomo API!"},
	})
}

func TestSchoolAPI_students(t *testing.T) {
	app, _ := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "create: invalid",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     `{"id": "S003", "name": " ", "age": 0, "phone": "123", "grade": 9, "class": "9A"}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{
				"name":  "this field is required",
				"age":   "age must be greater than 0",
				"phone": "phone number must contain at least 10 characters",
			},
		},
		{
			name:     "create: duplicate",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     `{"id": "S001", "name": "Eve", "age": 15, "phone": "0812345699", "grade": 9, "class": "9A"}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"id": school.ErrStudentExists.Error()},
		},
		{
			name:     "create: malformed",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     `{"id": `,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/students",
			body:     `{"id": " S003 ", "name": "Carol", "age": 14, "phone": "0812345699", "grade": 9, "class": "9A"}`,
			wantCode: http.StatusCreated,
			wantData: map[string]interface{}{
				"id": "S003", "name": "Carol", "age": 14, "phone": "0812345699", "role": "Student",
				"grade": 9, "class": "9A", "grades": map[string]float64{}, "average": 0,
			},
		},
		{
			name:     "retrieve: not found",
			method:   http.MethodGet,
			path:     "/v1/students/S999",
			wantCode: http.StatusNotFound,
			wantData: httpErr{Error: "Student not found"},
		},
		{
			name:     "record grade: out of range",
			method:   http.MethodPut,
			path:     "/v1/students/S003/grades",
			body:     `{"subject": "Math", "score": 101}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"score": "score must be 100 or less"},
		},
		{
			name:     "record grade: unknown student",
			method:   http.MethodPut,
			path:     "/v1/students/S999/grades",
			body:     `{"subject": "Math", "score": 80}`,
			wantCode: http.StatusNotFound,
		},
		{
			name:     "record grade",
			method:   http.MethodPut,
			path:     "/v1/students/S003/grades/",
			body:     `{"subject": "Math", "score": 80}`,
			wantCode: http.StatusOK,
			wantData: map[string]interface{}{
				"id": "S003", "name": "Carol", "age": 14, "phone": "0812345699", "role": "Student",
				"grade": 9, "class": "9A", "grades": map[string]float64{"Math": 80}, "average": 80,
			},
		},
	})
}

func TestSchoolAPI_queryStudents(t *testing.T) {
	app, _ := setup(t)

	ids := func(t *testing.T, path string) []string {
		req, rec := newRequest(http.MethodGet, path, "")
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res []struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		got := make([]string, 0, len(res))
		for _, r := range res {
			got = append(got, r.ID)
		}
		return got
	}

	assert.Equal(t, []string{"S001", "S002"}, ids(t, "/v1/students"))
	assert.Equal(t, []string{"S002", "S001"}, ids(t, "/v1/students?ordering=-id"))
	assert.Equal(t, []string{"S002", "S001"}, ids(t, "/v1/students?ordering=average"))
	assert.Equal(t, []string{"S001", "S002"}, ids(t, "/v1/students?ordering=grade,-average"))

	runHTTPTests(t, app, []httpTest{
		{
			name:     "unknown ordering",
			method:   http.MethodGet,
			path:     "/v1/students?ordering=shoe_size",
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"ordering": "cannot order by shoe_size (choose from age, average, class, grade, id, name)"},
		},
	})
}

func TestSchoolAPI_summaryAndReports(t *testing.T) {
	app, notifications := setup(t)

	req, rec := newRequest(http.MethodGet, "/v1/students/S001/summary", "")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var sum struct {
		GPA     float64 `json:"gpa"`
		Letter  string  `json:"letter"`
		Status  string  `json:"status"`
		Average float64 `json:"average"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.InDelta(t, 3.67, sum.GPA, 0.01)
	assert.Equal(t, "A", sum.Letter)
	assert.Equal(t, "Excellent", sum.Status)
	assert.InDelta(t, 91.67, sum.Average, 0.01)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "summary: unknown student",
			method:   http.MethodGet,
			path:     "/v1/students/S999/summary",
			wantCode: http.StatusOK,
			wantData: map[string]interface{}{"id": "S999", "gpa": 0, "letter": "N/A", "status": "N/A", "average": 0},
		},
		{
			name:     "report: unknown student",
			method:   http.MethodGet,
			path:     "/v1/students/S999/report",
			wantCode: http.StatusNotFound,
			wantText: "Student not found",
		},
		{
			name:     "teacher report: unknown teacher",
			method:   http.MethodGet,
			path:     "/v1/teachers/S001/report",
			wantCode: http.StatusNotFound,
			wantText: "Teacher not found",
		},
		{
			name:     "send report: unknown student",
			method:   http.MethodPost,
			path:     "/v1/students/S999/report/send",
			wantCode: http.StatusNotFound,
		},
		{
			name:     "send report",
			method:   http.MethodPost,
			path:     "/v1/students/S002/report/send",
			wantCode: http.StatusOK,
			wantData: map[string]bool{"sent": true},
		},
	})

	req, rec = newRequest(http.MethodGet, "/v1/students/S002/report", "")
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "STUDENT REPORT")
	assert.Equal(t, "[EMAIL] "+rec.Body.String()+"\n", notifications.String())
}

func TestSchoolAPI_teachers(t *testing.T) {
	app, _ := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "create: non-positive salary",
			method:   http.MethodPost,
			path:     "/v1/teachers",
			body:     `{"id": "T002", "name": "Ms. Lee", "age": 35, "phone": "0822222222", "subject": "Art", "salary": 0}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"salary": "salary must be greater than 0"},
		},
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/teachers",
			body:     `{"id": "T002", "name": "Ms. Lee", "age": 35, "phone": "0822222222", "subject": "Art", "salary": 6000}`,
			wantCode: http.StatusCreated,
			wantData: map[string]interface{}{
				"id": "T002", "name": "Ms. Lee", "age": 35, "phone": "0822222222", "role": "Teacher",
				"subject": "Art", "salary": 6000, "classes": []string{},
			},
		},
		{
			name:     "assign class: already assigned",
			method:   http.MethodPut,
			path:     "/v1/teachers/T001/classes",
			body:     `{"class": "10A"}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"class": "class already assigned to this teacher"},
		},
		{
			name:     "assign class",
			method:   http.MethodPut,
			path:     "/v1/teachers/T001/classes",
			body:     `{"class": "10B"}`,
			wantCode: http.StatusOK,
			wantData: map[string]interface{}{
				"id": "T001", "name": "Mr. Smith", "age": 40, "phone": "0811111111", "role": "Teacher",
				"subject": "Math", "salary": 4999, "classes": []string{"10A", "10B"},
			},
		},
		{
			name:     "tax: lower bracket",
			method:   http.MethodGet,
			path:     "/v1/teachers/T001/tax",
			wantCode: http.StatusOK,
			wantData: map[string]interface{}{"id": "T001", "salary": 4999, "tax": 499.90000000000003},
		},
		{
			name:     "salary: invalid",
			method:   http.MethodPut,
			path:     "/v1/teachers/T001/salary",
			body:     `{"salary": -10}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "salary: unknown teacher",
			method:   http.MethodPut,
			path:     "/v1/teachers/T999/salary",
			body:     `{"salary": 5000}`,
			wantCode: http.StatusNotFound,
			wantData: httpErr{Error: "Teacher not found"},
		},
		{
			name:     "salary",
			method:   http.MethodPut,
			path:     "/v1/teachers/T001/salary",
			body:     `{"salary": 5000}`,
			wantCode: http.StatusOK,
		},
		{
			name:     "tax: upper bracket",
			method:   http.MethodGet,
			path:     "/v1/teachers/T001/tax",
			wantCode: http.StatusOK,
			wantData: map[string]interface{}{"id": "T001", "salary": 5000, "tax": 750},
		},
		{
			name:     "query ordered by salary",
			method:   http.MethodGet,
			path:     "/v1/teachers?ordering=-salary",
			wantCode: http.StatusOK,
			wantData: []map[string]interface{}{
				{
					"id": "T002", "name": "Ms. Lee", "age": 35, "phone": "0822222222", "role": "Teacher",
					"subject": "Art", "salary": 6000, "classes": []string{},
				},
				{
					"id": "T001", "name": "Mr. Smith", "age": 40, "phone": "0811111111", "role": "Teacher",
					"subject": "Math", "salary": 5000, "classes": []string{"10A", "10B"},
				},
			},
		},
	})
}

func TestSchoolAPI_peopleAndStats(t *testing.T) {
	app, _ := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "people",
			method:   http.MethodGet,
			path:     "/v1/people",
			wantCode: http.StatusOK,
			wantData: []map[string]string{
				{"id": "S001", "name": "Alice Johnson", "role": "Student"},
				{"id": "S002", "name": "Bob Smith", "role": "Student"},
				{"id": "T001", "name": "Mr. Smith", "role": "Teacher"},
			},
		},
		{
			name:     "statistics",
			method:   http.MethodGet,
			path:     "/v1/school",
			wantCode: http.StatusOK,
			wantData: school.Stats{
				School:   testutil.SchoolName,
				Students: 2,
				Teachers: 1,
				Created:  school.Counters{People: 3, Students: 2, Teachers: 1},
			},
		},
	})
}

func TestSchoolAPI_feedback(t *testing.T) {
	app, _ := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "empty",
			method:   http.MethodGet,
			path:     "/v1/feedback",
			wantCode: http.StatusOK,
			wantData: []school.Feedback{},
		},
		{
			name:     "invalid role",
			method:   http.MethodPost,
			path:     "/v1/feedback",
			body:     `{"person_id": "S001", "role": "parent", "comment": "hi"}`,
			wantCode: http.StatusBadRequest,
			wantData: map[string]string{"role": "role must be one of Student or Teacher"},
		},
		{
			name:     "create student feedback",
			method:   http.MethodPost,
			path:     "/v1/feedback",
			body:     `{"person_id": "S001", "role": "student", "comment": "Great term"}`,
			wantCode: http.StatusCreated,
			wantData: school.Feedback{ID: 1, PersonID: "S001", Role: "Student", Comment: "Great term"},
		},
		{
			name:     "create teacher feedback",
			method:   http.MethodPost,
			path:     "/v1/feedback",
			body:     `{"person_id": "T001", "role": "Teacher", "comment": "Thanks"}`,
			wantCode: http.StatusCreated,
			wantData: school.Feedback{ID: 2, PersonID: "T001", Role: "Teacher", Comment: "Thanks"},
		},
		{
			name:     "most recent first",
			method:   http.MethodGet,
			path:     "/v1/feedback",
			wantCode: http.StatusOK,
			wantData: []school.Feedback{
				{ID: 2, PersonID: "T001", Role: "Teacher", Comment: "Thanks"},
				{ID: 1, PersonID: "S001", Role: "Student", Comment: "Great term"},
			},
		},
	})
}

func TestSchoolAPI_noStorage(t *testing.T) {
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), core.NewTestConfig())
	logger.Enable(false)
	app := NewServer(Options{DisableReqLogs: true, School: school.New(school.Options{}), Logger: logger})

	runHTTPTests(t, app, []httpTest{
		{
			name:     "feedback",
			method:   http.MethodGet,
			path:     "/v1/feedback",
			wantCode: http.StatusServiceUnavailable,
			wantData: httpErr{Error: "feedback cannot be stored: no storage configured"},
		},
	})
}
