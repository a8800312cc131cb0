package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inmovement/patient-portal/internal/core/ports"
)

// CatalogHandler serves the home screen and the video catalog.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Home handles GET /home.
//
// @Summary      Home screen
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  homeResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /home [get]
func (h *CatalogHandler) Home(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	view, err := h.service.Home(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, homeResponse{
		Profile: toSummaryResponse(view.Profile),
		Videos:  toVideoResponses(view.Videos),
	})
}

// Search handles GET /videos?q=.
//
// @Summary      Search videos by title
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Title substring"
// @Success      200  {object}  videoListResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /videos [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	var q searchQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&q); err != nil {
		return err
	}

	views, err := h.service.SearchVideos(c.Request().Context(), sess, q.Q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, videoListResponse{Videos: toVideoResponses(views)})
}

// Favorites handles GET /favorites.
//
// @Summary      List favorite videos
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  videoListResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /favorites [get]
func (h *CatalogHandler) Favorites(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	views, err := h.service.Favorites(c.Request().Context(), sess)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, videoListResponse{Videos: toVideoResponses(views)})
}

// ToggleFavorite handles POST /videos/:id/favorite.
//
// @Summary      Toggle a favorite video
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Video id"
// @Success      200  {object}  favoriteResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /videos/{id}/favorite [post]
func (h *CatalogHandler) ToggleFavorite(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return writeError(c, err)
	}

	var p favoriteParams
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid video id")
	}
	if err := c.Validate(&p); err != nil {
		return err
	}

	fav, err := h.service.ToggleFavorite(c.Request().Context(), sess, p.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, favoriteResponse{VideoID: p.ID, Favorite: fav})
}
