// file: internals/features/users/students/controller/student_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"stepup_backend/internals/features/users/students/dto"
	"stepup_backend/internals/features/users/students/model"
	helper "stepup_backend/internals/helpers"
	authHelper "stepup_backend/internals/helpers/auth"
)

type StudentController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db, Validate: validator.New()}
}

/* =========================================================
   LIST — GET /api/a/students
========================================================= */

func (ctl *StudentController) List(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{})
	if centreID, scoped := rc.ScopeCentre(uuid.Nil); scoped {
		q = q.Where("student_centre_id = ?", centreID)
	}
	if name := c.Query("name"); name != "" {
		q = q.Where("student_full_name ILIKE ?", "%"+name+"%")
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var rows []model.StudentModel
	if err := q.Order("student_full_name ASC").
		Limit(p.Limit).Offset(p.Offset).
		Find(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.SuccessWithPagination(c, "Students fetched successfully", rows,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

/* =========================================================
   DETAIL — GET /api/a/students/:id
========================================================= */

func (ctl *StudentController) GetByID(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Student not found")
	}
	if !rc.SameTenant(student.StudentCentreID) {
		return helper.Error(c, fiber.StatusForbidden, "Student belongs to another centre")
	}

	return helper.Success(c, "Student fetched successfully", student)
}

/* =========================================================
   CREATE — POST /api/a/students
========================================================= */

func (ctl *StudentController) Create(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var existing int64
	if err := ctl.DB.WithContext(c.UserContext()).Model(&model.StudentModel{}).
		Where("student_user_id = ? AND student_centre_id = ?", req.UserID, rc.CentreID).
		Count(&existing).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check existing students")
	}
	if existing > 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Student already enrolled at this centre")
	}

	student := req.ToModel(rc.CentreID)
	if err := ctl.DB.WithContext(c.UserContext()).Create(student).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Student created successfully", student)
}

/* =========================================================
   PATCH — PATCH /api/a/students/:id
========================================================= */

func (ctl *StudentController) Patch(c *fiber.Ctx) error {
	rc, err := authHelper.FromFiber(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	studentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req dto.PatchStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var student model.StudentModel
	if err := ctl.DB.WithContext(c.UserContext()).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Student not found")
	}
	if !rc.SameTenant(student.StudentCentreID) {
		return helper.Error(c, fiber.StatusForbidden, "Student belongs to another centre")
	}

	if req.FullName != nil {
		student.StudentFullName = *req.FullName
	}
	if req.DateOfBirth != nil {
		student.StudentDateOfBirth = req.DateOfBirth
	}
	if req.ParentUserID != nil {
		student.StudentParentUserID = req.ParentUserID
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(&student).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update student")
	}

	return helper.Success(c, "Student updated successfully", student)
}
