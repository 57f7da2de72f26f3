package handler

import (
	"errors"
	"strings"
	"time"

	"theater_manager/constants"
	"theater_manager/database"
	"theater_manager/helper"
	"theater_manager/model"
	"theater_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

// serializeMovie reshapes a movie for the wire: the id goes out as a
// string, the release date as ISO-8601 UTC.
func serializeMovie(m model.Movie) fiber.Map {
	return fiber.Map{
		"movie_id":         utils.FormatID(m.ID),
		"name":             m.Name,
		"duration":         m.Duration,
		"release_date":     m.ReleaseDate.UTC().Format(time.RFC3339),
		"movie_poster_url": m.MoviePosterURL,
		"featured":         m.Featured,
		"rating":           m.Rating,
		"slug":             m.Slug,
		"status":           m.Status,
	}
}

func GetMovies(c *fiber.Ctx) error {
	filterInput := new(model.FilterMovieInput)
	if err := c.QueryParser(filterInput); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	db := database.DB
	condition := db.Model(&model.Movie{})
	if filterInput.Name != "" {
		condition = condition.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(filterInput.Name)+"%")
	}
	if filterInput.Featured != nil {
		condition = condition.Where("featured = ?", *filterInput.Featured)
	}
	if filterInput.Status != nil {
		condition = condition.Where("status = ?", *filterInput.Status)
	}

	condition = utils.ApplyPagination(condition, filterInput.Limit, filterInput.Page)

	var movies model.Movies
	if err := condition.Order("id asc").Find(&movies).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	serialized := make([]fiber.Map, 0, len(movies))
	for _, m := range movies {
		serialized = append(serialized, serializeMovie(m))
	}
	return utils.SuccessResponse(c, fiber.StatusOK, serialized)
}

func GetMovieById(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	var movie model.Movie
	if err := database.DB.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeMovie(movie))
}

func CreateMovie(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateMovieInput)

	releaseDate, _ := time.Parse("2006-01-02", input.ReleaseDate)

	movie := model.Movie{
		Name:           input.Name,
		Duration:       input.Duration,
		ReleaseDate:    releaseDate,
		MoviePosterURL: input.MoviePosterURL,
		Rating:         input.Rating,
		Status:         true,
	}
	if input.Featured != nil {
		movie.Featured = *input.Featured
	}
	if input.Status != nil {
		movie.Status = *input.Status
	}

	db := database.DB
	movie.Slug = helper.GenerateUniqueMovieSlug(db, movie.Name)

	if err := db.Create(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, serializeMovie(movie))
}

func EditMovie(c *fiber.Ctx) error {
	input := c.Locals("input").(model.UpdateMovieInput)
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	oldName := movie.Name

	// copier only overwrites fields the input actually carries.
	if err := copier.CopyWithOption(&movie, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if input.ReleaseDate != nil {
		releaseDate, _ := time.Parse("2006-01-02", *input.ReleaseDate)
		movie.ReleaseDate = releaseDate
	}
	if input.Status != nil {
		movie.Status = *input.Status
	}
	if input.Featured != nil {
		movie.Featured = *input.Featured
	}
	if input.Name != nil && *input.Name != oldName {
		movie.Slug = helper.GenerateUniqueMovieSlug(db, movie.Name)
	}

	if err := db.Save(&movie).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeMovie(movie))
}

// DeleteMovie soft-deletes: status goes false, the row stays queryable.
// Deleting an already-inactive movie is a no-op.
func DeleteMovie(c *fiber.Ctx) error {
	movieId := c.Locals("inputId").(int)

	db := database.DB
	var movie model.Movie
	if err := db.First(&movie, movieId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.MOVIE_NOT_FOUND, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if movie.Status {
		if err := db.Model(&movie).Update("status", false).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		movie.Status = false
	}

	return utils.SuccessResponse(c, fiber.StatusOK, serializeMovie(movie))
}
