package controllers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/hyperforge/hyperforge.go/lib/responses"
	"github.com/hyperforge/hyperforge.go/lib/service"
	"github.com/labstack/echo/v4"
)

// JobController : Job controller struct
type JobController struct {
	svc *service.ForgeService
}

func NewJobController(svc *service.ForgeService) *JobController {
	return &JobController{svc: svc}
}

type GetJobsResponseBody struct {
	Jobs []Job `json:"jobs"`
}

// GetJobs godoc
// @Summary      List generation jobs
// @Description  Returns the user's generation jobs, newest first
// @Accept       json
// @Produce      json
// @Tags         Job
// @Param        state     query     string  false  "Filter by job state"
// @Param        asset_id  query     string  false  "Filter by asset public id"
// @Success      200       {object}  GetJobsResponseBody
// @Failure      404       {object}  responses.ErrorResponse
// @Failure      500       {object}  responses.ErrorResponse
// @Router       /v2/jobs [get]
// @Security     OAuth2Password
func (controller *JobController) GetJobs(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	filter := service.JobFilter{State: c.QueryParam("state")}
	if assetPublicID := c.QueryParam("asset_id"); assetPublicID != "" {
		asset, err := controller.svc.FindAssetByPublicID(c.Request().Context(), assetPublicID, userId)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return c.JSON(http.StatusNotFound, responses.AssetNotFoundError)
			}
			return err
		}
		filter.AssetID = asset.ID
	}

	jobs, err := controller.svc.JobsFor(c.Request().Context(), userId, filter)
	if err != nil {
		return err
	}

	assetIds := make([]int64, 0, len(jobs))
	for _, job := range jobs {
		assetIds = append(assetIds, job.AssetID)
	}
	publicIds, err := controller.svc.AssetPublicIDs(c.Request().Context(), assetIds)
	if err != nil {
		return err
	}

	response := make([]Job, len(jobs))
	for i, job := range jobs {
		response[i] = *jobResponse(&job, publicIds[job.AssetID])
	}
	return c.JSON(http.StatusOK, &GetJobsResponseBody{Jobs: response})
}

// GetJob godoc
// @Summary      Retrieve a generation job
// @Description  Returns one job with its state and progress, polled by the studio progress bar
// @Accept       json
// @Produce      json
// @Tags         Job
// @Param        id   path      int  true  "Job id"
// @Success      200  {object}  Job
// @Failure      404  {object}  responses.ErrorResponse
// @Failure      500  {object}  responses.ErrorResponse
// @Router       /v2/jobs/{id} [get]
// @Security     OAuth2Password
func (controller *JobController) GetJob(c echo.Context) error {
	userId := c.Get("UserID").(int64)

	jobId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, responses.BadArgumentsError)
	}

	job, err := controller.svc.FindJob(c.Request().Context(), jobId, userId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, responses.JobNotFoundError)
		}
		return err
	}

	publicIds, err := controller.svc.AssetPublicIDs(c.Request().Context(), []int64{job.AssetID})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, jobResponse(job, publicIds[job.AssetID]))
}
