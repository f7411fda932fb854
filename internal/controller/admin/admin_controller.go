package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/controller"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/service"
)

type AdminController struct {
	catalogService      service.CatalogService
	routineService      service.RoutineService
	resultService       service.ResultService
	subscriptionService service.SubscriptionService
}

func NewAdminController(
	catalogService service.CatalogService,
	routineService service.RoutineService,
	resultService service.ResultService,
	subscriptionService service.SubscriptionService,
) *AdminController {
	return &AdminController{
		catalogService:      catalogService,
		routineService:      routineService,
		resultService:       resultService,
		subscriptionService: subscriptionService,
	}
}

// --- Subjects ---

// CreateSubject godoc
// @Summary (Admin) Create a subject
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Param subject body dto.SubjectCreateDTO true "Subject"
// @Success 201 {object} dto.SubjectResponseDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/subjects [post]
func (c *AdminController) CreateSubject(ctx *gin.Context) {
	var req dto.SubjectCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	subject, err := c.catalogService.CreateSubject(req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, subject)
}

func (c *AdminController) GetSubjects(ctx *gin.Context) {
	subjects, err := c.catalogService.GetSubjects()
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subjects)
}

func (c *AdminController) GetSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "subject_id")
	if !ok {
		return
	}
	subject, err := c.catalogService.GetSubject(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

func (c *AdminController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "subject_id")
	if !ok {
		return
	}
	var req dto.SubjectCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	subject, err := c.catalogService.UpdateSubject(id, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, subject)
}

func (c *AdminController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx, "subject_id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteSubject(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Chapters ---

func (c *AdminController) CreateChapter(ctx *gin.Context) {
	var req dto.ChapterCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	chapter, err := c.catalogService.CreateChapter(req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, chapter)
}

func (c *AdminController) GetChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "chapter_id")
	if !ok {
		return
	}
	chapter, err := c.catalogService.GetChapter(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chapter)
}

func (c *AdminController) GetChaptersBySubject(ctx *gin.Context) {
	subjectID, ok := pathID(ctx, "subject_id")
	if !ok {
		return
	}
	chapters, err := c.catalogService.GetChaptersBySubject(subjectID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chapters)
}

func (c *AdminController) UpdateChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "chapter_id")
	if !ok {
		return
	}
	var req dto.ChapterCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	chapter, err := c.catalogService.UpdateChapter(id, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, chapter)
}

func (c *AdminController) DeleteChapter(ctx *gin.Context) {
	id, ok := pathID(ctx, "chapter_id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteChapter(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Exams ---

// CreateExam godoc
// @Summary (Admin) Create an exam under a chapter
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Param exam body dto.ExamCreateDTO true "Exam"
// @Success 201 {object} dto.ExamResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Chapter not found"
// @Router /admin/exams [post]
func (c *AdminController) CreateExam(ctx *gin.Context) {
	var req dto.ExamCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	exam, err := c.catalogService.CreateExam(req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, exam)
}

func (c *AdminController) GetExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	exam, err := c.catalogService.GetExam(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

func (c *AdminController) GetExamsByChapter(ctx *gin.Context) {
	chapterID, ok := pathID(ctx, "chapter_id")
	if !ok {
		return
	}
	exams, err := c.catalogService.GetExamsByChapter(chapterID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

func (c *AdminController) UpdateExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.ExamCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	exam, err := c.catalogService.UpdateExam(id, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, exam)
}

func (c *AdminController) DeleteExam(ctx *gin.Context) {
	id, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteExam(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Questions ---

// CreateQuestion godoc
// @Summary (Admin) Add a question to an exam
// @Description Options must carry exactly one correct choice.
// @Tags Admin - Catalog
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param question body dto.QuestionCreateDTO true "Question with options"
// @Success 201 {object} dto.QuestionResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /admin/exams/{exam_id}/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	question, err := c.catalogService.CreateQuestion(examID, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, question)
}

func (c *AdminController) GetQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	question, err := c.catalogService.GetQuestion(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

func (c *AdminController) GetQuestionsByExam(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	questions, err := c.catalogService.GetQuestionsByExam(examID)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

func (c *AdminController) UpdateQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	var req dto.QuestionCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	question, err := c.catalogService.UpdateQuestion(id, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, question)
}

func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "question_id")
	if !ok {
		return
	}
	if err := c.catalogService.DeleteQuestion(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Routines ---

// CreateRoutine godoc
// @Summary (Admin) Schedule an exam sitting
// @Tags Admin - Routines
// @Accept json
// @Produce json
// @Param routine body dto.RoutineCreateDTO true "Routine"
// @Success 201 {object} dto.RoutineResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /admin/routines [post]
func (c *AdminController) CreateRoutine(ctx *gin.Context) {
	var req dto.RoutineCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	routine, err := c.routineService.Create(req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, routine)
}

func (c *AdminController) GetRoutines(ctx *gin.Context) {
	routines, err := c.routineService.GetAll()
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, routines)
}

func (c *AdminController) GetRoutine(ctx *gin.Context) {
	id, ok := pathID(ctx, "routine_id")
	if !ok {
		return
	}
	routine, err := c.routineService.Get(id)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, routine)
}

func (c *AdminController) UpdateRoutine(ctx *gin.Context) {
	id, ok := pathID(ctx, "routine_id")
	if !ok {
		return
	}
	var req dto.RoutineCreateDTO
	if !bindJSON(ctx, &req) {
		return
	}
	routine, err := c.routineService.Update(id, req)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, routine)
}

func (c *AdminController) DeleteRoutine(ctx *gin.Context) {
	id, ok := pathID(ctx, "routine_id")
	if !ok {
		return
	}
	if err := c.routineService.Delete(id); err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// --- Analytics & operations ---

// GetExamAnalytics godoc
// @Summary (Admin) Per-exam rollup across all users
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {array} dto.ExamAnalyticsDTO
// @Router /admin/analytics/exams [get]
func (c *AdminController) GetExamAnalytics(ctx *gin.Context) {
	analytics, err := c.resultService.AdminAnalytics()
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// GetSubscriptionAnalytics godoc
// @Summary (Admin) Subscription ledger counts
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {object} dto.SubscriptionAnalyticsDTO
// @Router /admin/analytics/subscriptions [get]
func (c *AdminController) GetSubscriptionAnalytics(ctx *gin.Context) {
	analytics, err := c.subscriptionService.Analytics()
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// RunExpirySweep godoc
// @Summary (Admin) Expire subscriptions past their window
// @Description Transitions active subscriptions whose end date has passed. Safe to invoke repeatedly.
// @Tags Admin - Analytics
// @Produce json
// @Success 200 {object} dto.ExpirySweepDTO
// @Router /admin/subscriptions/expire-sweep [post]
func (c *AdminController) RunExpirySweep(ctx *gin.Context) {
	count, err := c.subscriptionService.ExpireOldSubscriptions()
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ExpirySweepDTO{Expired: count})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

func bindJSON(ctx *gin.Context, req any) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		log.Warn().Err(err).Str("path", ctx.FullPath()).Msg("Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return false
	}
	return true
}

func respondErr(ctx *gin.Context, err error) {
	status := controller.StatusFromError(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Admin handler: service error")
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}
