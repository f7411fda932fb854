package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tahsinkabir/examly/internal/controller"
	"github.com/tahsinkabir/examly/internal/dto"
	"github.com/tahsinkabir/examly/internal/service"
)

type ExamController struct {
	userExamService service.UserExamService
	attemptService  service.AttemptService
	resultService   service.ResultService
	routineService  service.RoutineService
}

func NewExamController(
	userExamService service.UserExamService,
	attemptService service.AttemptService,
	resultService service.ResultService,
	routineService service.RoutineService,
) *ExamController {
	return &ExamController{
		userExamService: userExamService,
		attemptService:  attemptService,
		resultService:   resultService,
		routineService:  routineService,
	}
}

// GetPublishedExams godoc
// @Summary (User) List published exams
// @Tags User - Exams & Attempts
// @Produce json
// @Success 200 {array} dto.ExamResponseDTO
// @Failure 500 {object} dto.ErrorResponse
// @Router /exams [get]
func (c *ExamController) GetPublishedExams(ctx *gin.Context) {
	exams, err := c.userExamService.GetPublishedExams()
	if err != nil {
		log.Error().Err(err).Msg("GetPublishedExams: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve exams", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, exams)
}

// GetExamQuestions godoc
// @Summary (User) Get an exam's questions for taking it
// @Description Questions are returned without the answer key or explanations.
// @Tags User - Exams & Attempts
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.ExamQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Exam ID format"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Router /exams/{exam_id}/questions [get]
func (c *ExamController) GetExamQuestions(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	questions, err := c.userExamService.GetExamQuestions(examID)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Msg("GetExamQuestions: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// SubmitAttempt godoc
// @Summary (User) Submit answers for an exam
// @Description Evaluates the submission against the answer key and returns the persisted attempt with per-question feedback. Each user gets exactly one attempt per exam.
// @Tags User - Exams & Attempts
// @Accept json
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param submission body dto.AttemptSubmitDTO true "User ID, answers and time taken"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Exam not found"
// @Failure 409 {object} dto.ErrorResponse "Exam already attempted"
// @Router /exams/{exam_id}/attempts [post]
func (c *ExamController) SubmitAttempt(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}

	var req dto.AttemptSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	log.Info().Uint("examID", examID).Uint("userID", req.UserID).Int("answerCount", len(req.Answers)).Msg("Received attempt submission")

	detail, err := c.attemptService.Submit(req.UserID, examID, req)
	if err != nil {
		log.Warn().Err(err).Uint("examID", examID).Uint("userID", req.UserID).Msg("SubmitAttempt: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// GetMyResults godoc
// @Summary (User) List all of a user's attempts
// @Tags User - Exams & Attempts
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /my-results [get]
func (c *ExamController) GetMyResults(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	results, err := c.attemptService.GetUserResults(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetMyResults: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve results", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// GetMyExamResult godoc
// @Summary (User) Get the user's attempt for one exam
// @Tags User - Exams & Attempts
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.AttemptSummaryDTO
// @Failure 404 {object} dto.ErrorResponse "No attempt for this exam"
// @Router /exams/{exam_id}/my-result [get]
func (c *ExamController) GetMyExamResult(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	result, err := c.attemptService.GetResultByExam(userID, examID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("examID", examID).Msg("GetMyExamResult: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetLeaderboard godoc
// @Summary (User) Exam leaderboard
// @Description Top 20 results ordered by score descending, ties broken by faster time.
// @Tags User - Exams & Attempts
// @Produce json
// @Param exam_id path int true "Exam ID"
// @Success 200 {array} dto.LeaderboardEntryDTO
// @Router /exams/{exam_id}/leaderboard [get]
func (c *ExamController) GetLeaderboard(ctx *gin.Context) {
	examID, ok := pathID(ctx, "exam_id")
	if !ok {
		return
	}
	entries, err := c.resultService.Leaderboard(examID)
	if err != nil {
		log.Error().Err(err).Uint("examID", examID).Msg("GetLeaderboard: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve leaderboard", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, entries)
}

// GetMyAnalytics godoc
// @Summary (User) Per-subject performance rollup
// @Tags User - Exams & Attempts
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.SubjectAnalyticsDTO
// @Router /my-analytics [get]
func (c *ExamController) GetMyAnalytics(ctx *gin.Context) {
	userID, ok := queryUserID(ctx)
	if !ok {
		return
	}
	analytics, err := c.resultService.UserAnalytics(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetMyAnalytics: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve analytics", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, analytics)
}

// GetUpcomingRoutines godoc
// @Summary (User) Upcoming scheduled exam sittings
// @Tags User - Exams & Attempts
// @Produce json
// @Success 200 {array} dto.RoutineResponseDTO
// @Router /routines/upcoming [get]
func (c *ExamController) GetUpcomingRoutines(ctx *gin.Context) {
	routines, err := c.routineService.Upcoming()
	if err != nil {
		log.Error().Err(err).Msg("GetUpcomingRoutines: service error")
		ctx.JSON(controller.StatusFromError(err), dto.ErrorResponse{Message: "Failed to retrieve routines", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, routines)
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// queryUserID reads the caller's identity. The auth middleware is an external
// collaborator; until it lands the id arrives as a query parameter.
func queryUserID(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid or missing user_id"})
		return 0, false
	}
	return uint(val), true
}
