package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/person"
	"github.com/trezcool/masomo/core/school"
)

var errClassAssigned = "class already assigned to this teacher"

type schoolApi struct {
	sch *school.School
}

func registerSchoolAPI(g *echo.Group, sch *school.School, read, write echo.MiddlewareFunc) {
	api := schoolApi{sch: sch}

	g.GET("/school", api.statistics, read)
	g.GET("/people", api.queryPeople, read)

	sg := g.Group("/students")
	sg.POST("", api.createStudent, write)
	sg.GET("", api.queryStudents, read)
	sg.GET("/:id", api.retrieveStudent, read)
	sg.PUT("/:id/grades", api.recordGrade, write)
	sg.GET("/:id/summary", api.studentSummary, read)
	sg.GET("/:id/report", api.studentReport, read)
	sg.POST("/:id/report/send", api.sendStudentReport, read)

	tg := g.Group("/teachers")
	tg.POST("", api.createTeacher, write)
	tg.GET("", api.queryTeachers, read)
	tg.GET("/:id", api.retrieveTeacher, read)
	tg.PUT("/:id/classes", api.assignClass, write)
	tg.PUT("/:id/salary", api.updateSalary, write)
	tg.GET("/:id/report", api.teacherReport, read)
	tg.GET("/:id/tax", api.teacherTax, read)

	fg := g.Group("/feedback")
	fg.POST("", api.createFeedback, read)
	fg.GET("", api.queryFeedback, read)
}

// Handlers

func (api *schoolApi) statistics(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.sch.Statistics())
}

func (api *schoolApi) queryPeople(ctx echo.Context) error {
	people := api.sch.People()
	res := make([]personResource, 0, len(people))
	for _, p := range people {
		res = append(res, newPersonResource(p))
	}
	return ctx.JSON(http.StatusOK, res)
}

// Students

func (api *schoolApi) createStudent(ctx echo.Context) error {
	var data school.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.sch); err != nil {
		return err
	}

	st := api.sch.NewStudent(data.ID, data.Name, data.Age, data.Phone, data.GradeLevel, data.Class)
	added, err := api.sch.AddStudent(ctx.Request().Context(), st)
	if err != nil {
		return errors.Wrap(err, "adding student")
	}
	if !added {
		return core.NewValidationError(school.ErrStudentExists, core.FieldError{Field: "id", Error: school.ErrStudentExists.Error()})
	}
	return ctx.JSON(http.StatusCreated, newStudentResource(st))
}

func (api *schoolApi) queryStudents(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	students := api.sch.Students()
	res := make([]studentResource, 0, len(students))
	for _, st := range students {
		res = append(res, newStudentResource(st))
	}
	if err := sortBy(res, ord.Orderings, studentFields); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *schoolApi) retrieveStudent(ctx echo.Context) error {
	st, ok := api.sch.GetStudent(ctx.Param("id"))
	if !ok {
		return errStudentNotFound
	}
	return ctx.JSON(http.StatusOK, newStudentResource(st))
}

func (api *schoolApi) recordGrade(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetStudent(id); !ok {
		return errStudentNotFound
	}

	var data school.NewGrade
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewGrade")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := api.sch.RecordGrade(ctx.Request().Context(), id, data.Subject, data.Score); err != nil {
		return errors.Wrap(err, "recording grade")
	}
	st, _ := api.sch.GetStudent(id)
	return ctx.JSON(http.StatusOK, newStudentResource(st))
}

// studentSummary answers with sentinels (GPA 0, letter "N/A") for unknown students.
func (api *schoolApi) studentSummary(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, newSummaryResource(api.sch, ctx.Param("id")))
}

func (api *schoolApi) studentReport(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetStudent(id); !ok {
		return ctx.String(http.StatusNotFound, school.StudentNotFoundMsg)
	}
	return ctx.String(http.StatusOK, api.sch.GenerateReport(id))
}

func (api *schoolApi) sendStudentReport(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetStudent(id); !ok {
		return errStudentNotFound
	}
	return ctx.JSON(http.StatusOK, sendResource{Sent: api.sch.SendReport(id)})
}

// Teachers

func (api *schoolApi) createTeacher(ctx echo.Context) error {
	var data school.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.sch); err != nil {
		return err
	}

	t := api.sch.NewTeacher(data.ID, data.Name, data.Age, data.Phone, data.Subject, data.Salary)
	added, err := api.sch.AddTeacher(ctx.Request().Context(), t)
	if err != nil {
		return errors.Wrap(err, "adding teacher")
	}
	if !added {
		return core.NewValidationError(school.ErrTeacherExists, core.FieldError{Field: "id", Error: school.ErrTeacherExists.Error()})
	}
	return ctx.JSON(http.StatusCreated, newTeacherResource(t))
}

func (api *schoolApi) queryTeachers(ctx echo.Context) error {
	var ord Ordering
	ord.Bind(ctx)

	teachers := api.sch.Teachers()
	res := make([]teacherResource, 0, len(teachers))
	for _, t := range teachers {
		res = append(res, newTeacherResource(t))
	}
	if err := sortBy(res, ord.Orderings, teacherFields); err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *schoolApi) retrieveTeacher(ctx echo.Context) error {
	t, ok := api.sch.GetTeacher(ctx.Param("id"))
	if !ok {
		return errTeacherNotFound
	}
	return ctx.JSON(http.StatusOK, newTeacherResource(t))
}

func (api *schoolApi) assignClass(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetTeacher(id); !ok {
		return errTeacherNotFound
	}

	var data school.ClassAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ClassAssignment")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	assigned, err := api.sch.AssignClass(ctx.Request().Context(), id, data.Class)
	if err != nil {
		return errors.Wrap(err, "assigning class")
	}
	if !assigned {
		return core.NewValidationError(nil, core.FieldError{Field: "class", Error: errClassAssigned})
	}
	t, _ := api.sch.GetTeacher(id)
	return ctx.JSON(http.StatusOK, newTeacherResource(t))
}

func (api *schoolApi) updateSalary(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetTeacher(id); !ok {
		return errTeacherNotFound
	}

	var data school.SalaryUpdate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SalaryUpdate")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	if _, err := api.sch.UpdateSalary(ctx.Request().Context(), id, data.Salary); err != nil {
		return errors.Wrap(err, "updating salary")
	}
	t, _ := api.sch.GetTeacher(id)
	return ctx.JSON(http.StatusOK, newTeacherResource(t))
}

func (api *schoolApi) teacherReport(ctx echo.Context) error {
	id := ctx.Param("id")
	if _, ok := api.sch.GetTeacher(id); !ok {
		return ctx.String(http.StatusNotFound, school.TeacherNotFoundMsg)
	}
	return ctx.String(http.StatusOK, api.sch.GenerateTeacherReport(id))
}

func (api *schoolApi) teacherTax(ctx echo.Context) error {
	t, ok := api.sch.GetTeacher(ctx.Param("id"))
	if !ok {
		return errTeacherNotFound
	}
	return ctx.JSON(http.StatusOK, taxResource{ID: t.ID(), Salary: t.Salary(), Tax: person.CalculateTax(t.Salary())})
}

// Feedback

func (api *schoolApi) createFeedback(ctx echo.Context) error {
	var data school.NewFeedback
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewFeedback")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	fb, err := api.sch.AddFeedback(ctx.Request().Context(), data)
	if err != nil {
		if errors.Cause(err) == school.ErrNoStorage {
			return errNoFeedbackStore
		}
		return errors.Wrap(err, "adding feedback")
	}
	return ctx.JSON(http.StatusCreated, fb)
}

func (api *schoolApi) queryFeedback(ctx echo.Context) error {
	fbs, err := api.sch.Feedback(ctx.Request().Context())
	if err != nil {
		if errors.Cause(err) == school.ErrNoStorage {
			return errNoFeedbackStore
		}
		return errors.Wrap(err, "listing feedback")
	}
	return ctx.JSON(http.StatusOK, fbs)
}
